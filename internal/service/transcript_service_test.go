package service

import (
	"context"
	"testing"

	"github.com/unifylabs/unify-backend/internal/model"
)

type fakeTranscriptSource struct {
	rows []model.TranscriptCourse
}

func (f *fakeTranscriptSource) TranscriptRows(context.Context, int) ([]model.TranscriptCourse, error) {
	return f.rows, nil
}

func course(code string, credits int, grade, semester string) model.TranscriptCourse {
	return model.TranscriptCourse{
		Code: code, Name: code, Credits: credits,
		Grade: grade, GradePoint: model.GradePoint(grade), Semester: semester,
	}
}

func TestTranscriptGPAWeightedByCredits(t *testing.T) {
	src := &fakeTranscriptSource{rows: []model.TranscriptCourse{
		course("CS101", 4, "A", "Fall 2024"),  // 16.0 points
		course("MA101", 3, "B", "Fall 2024"),  // 9.0 points
		course("PH101", 3, "C+", "Fall 2024"), // 6.9 points
	}}
	svc := NewTranscriptService(src)

	tr, err := svc.Transcript(context.Background(), 1)
	if err != nil {
		t.Fatalf("Transcript returned error: %v", err)
	}

	if tr.TotalCredits != 10 {
		t.Fatalf("total credits = %d, want 10", tr.TotalCredits)
	}
	// (16 + 9 + 6.9) / 10 = 3.19
	if tr.CumulativeGPA != 3.19 {
		t.Fatalf("cumulative GPA = %v, want 3.19", tr.CumulativeGPA)
	}
	if len(tr.Semesters) != 1 || tr.Semesters[0].GPA != 3.19 {
		t.Fatalf("semester breakdown wrong: %+v", tr.Semesters)
	}
}

func TestTranscriptGroupsSemesters(t *testing.T) {
	src := &fakeTranscriptSource{rows: []model.TranscriptCourse{
		course("CS101", 3, "B", "Fall 2024"),
		course("CS102", 3, "A", "Spring 2025"),
		course("MA201", 3, "A-", "Spring 2025"),
	}}
	svc := NewTranscriptService(src)

	tr, err := svc.Transcript(context.Background(), 1)
	if err != nil {
		t.Fatalf("Transcript returned error: %v", err)
	}
	if len(tr.Semesters) != 2 {
		t.Fatalf("semesters = %d, want 2", len(tr.Semesters))
	}
	if tr.Semesters[0].Name != "Fall 2024" || tr.Semesters[1].Name != "Spring 2025" {
		t.Fatalf("semester order wrong: %+v", tr.Semesters)
	}
	// Spring 2025: (12.0 + 11.1) / 6 = 3.85
	if tr.Semesters[1].GPA != 3.85 {
		t.Fatalf("Spring 2025 GPA = %v, want 3.85", tr.Semesters[1].GPA)
	}
}

func TestTranscriptDeansListRequiresCreditLoad(t *testing.T) {
	src := &fakeTranscriptSource{rows: []model.TranscriptCourse{
		// 4.0 GPA but only 6 credits: no Dean's List.
		course("CS101", 3, "A", "Fall 2024"),
		course("CS102", 3, "A+", "Fall 2024"),
		// 12 credits at 3.7+: Dean's List.
		course("CS201", 4, "A", "Spring 2025"),
		course("CS202", 4, "A", "Spring 2025"),
		course("CS203", 4, "A-", "Spring 2025"),
	}}
	svc := NewTranscriptService(src)

	tr, err := svc.Transcript(context.Background(), 1)
	if err != nil {
		t.Fatalf("Transcript returned error: %v", err)
	}
	if tr.Semesters[0].DeansList {
		t.Fatal("6-credit semester made Dean's List")
	}
	if !tr.Semesters[1].DeansList {
		t.Fatalf("Spring 2025 GPA %v on %d credits missed Dean's List",
			tr.Semesters[1].GPA, tr.Semesters[1].Credits)
	}
	if tr.DeansListed != 1 {
		t.Fatalf("deans list count = %d, want 1", tr.DeansListed)
	}
}

func TestTranscriptEmptyRecord(t *testing.T) {
	svc := NewTranscriptService(&fakeTranscriptSource{})

	tr, err := svc.Transcript(context.Background(), 1)
	if err != nil {
		t.Fatalf("Transcript returned error: %v", err)
	}
	if tr.CumulativeGPA != 0 || tr.TotalCredits != 0 || len(tr.Semesters) != 0 {
		t.Fatalf("empty record produced %+v", tr)
	}
}
