package service

import (
	"context"
	"math"

	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/repository"
)

// Dean's List thresholds: semester GPA at or above the cutoff while
// carrying at least the minimum graded credits.
const (
	deansListGPA     = 3.7
	deansListCredits = 12
)

// TranscriptSource provides the graded enrollment rows a transcript is
// built from. Satisfied by repository.EnrollmentRepository.
type TranscriptSource interface {
	TranscriptRows(ctx context.Context, studentID int) ([]model.TranscriptCourse, error)
}

var _ TranscriptSource = (*repository.EnrollmentRepository)(nil)

// TranscriptService assembles the academic record from completed,
// graded enrollments.
type TranscriptService struct {
	enrollmentRepo TranscriptSource
}

func NewTranscriptService(enrollmentRepo TranscriptSource) *TranscriptService {
	return &TranscriptService{enrollmentRepo: enrollmentRepo}
}

// Transcript groups a student's graded courses by semester and computes
// per-semester and cumulative GPA, credit-weighted.
func (s *TranscriptService) Transcript(ctx context.Context, studentID int) (*model.Transcript, error) {
	rows, err := s.enrollmentRepo.TranscriptRows(ctx, studentID)
	if err != nil {
		return nil, err
	}

	bySemester := map[string]*model.TranscriptSemester{}
	var order []string
	totalCredits := 0
	totalPoints := 0.0

	for _, course := range rows {
		sem, ok := bySemester[course.Semester]
		if !ok {
			sem = &model.TranscriptSemester{Name: course.Semester}
			bySemester[course.Semester] = sem
			order = append(order, course.Semester)
		}
		sem.Courses = append(sem.Courses, course)
		sem.Credits += course.Credits

		totalCredits += course.Credits
		totalPoints += course.GradePoint * float64(course.Credits)
	}

	transcript := &model.Transcript{Semesters: make([]model.TranscriptSemester, 0, len(order))}
	for _, name := range order {
		sem := bySemester[name]
		points := 0.0
		for _, c := range sem.Courses {
			points += c.GradePoint * float64(c.Credits)
		}
		if sem.Credits > 0 {
			sem.GPA = round2(points / float64(sem.Credits))
		}
		sem.DeansList = sem.GPA >= deansListGPA && sem.Credits >= deansListCredits
		if sem.DeansList {
			transcript.DeansListed++
		}
		transcript.Semesters = append(transcript.Semesters, *sem)
	}

	transcript.TotalCredits = totalCredits
	if totalCredits > 0 {
		transcript.CumulativeGPA = round2(totalPoints / float64(totalCredits))
	}
	return transcript, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
