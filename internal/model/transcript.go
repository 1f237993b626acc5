package model

// gradePoints is the institutional grade-to-point conversion table.
var gradePoints = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0, "D-": 0.7,
	"F": 0.0,
}

// GradePoint converts a letter grade to its point value. Unknown grades
// count as 0.0, matching registrar practice for unrecognized marks.
func GradePoint(grade string) float64 {
	return gradePoints[grade]
}

// TranscriptCourse is one completed, graded course on the transcript.
type TranscriptCourse struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Credits    int     `json:"credits"`
	Grade      string  `json:"grade"`
	GradePoint float64 `json:"grade_point"`
	Semester   string  `json:"semester"`
}

// TranscriptSemester groups transcript courses with a semester GPA.
type TranscriptSemester struct {
	Name      string             `json:"name"`
	Courses   []TranscriptCourse `json:"courses"`
	Credits   int                `json:"credits"`
	GPA       float64            `json:"gpa"`
	DeansList bool               `json:"deans_list"`
}

// Transcript is the full academic record with the cumulative GPA.
type Transcript struct {
	Semesters     []TranscriptSemester `json:"semesters"`
	TotalCredits  int                  `json:"total_credits"`
	CumulativeGPA float64              `json:"cumulative_gpa"`
	DeansListed   int                  `json:"deans_list_count"`
}
