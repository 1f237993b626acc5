package model

import "time"

// EnrollmentStatus is the lifecycle state of an enrollment record.
type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentDropped   EnrollmentStatus = "dropped"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// Enrollment binds a student to one section of a course for a term.
type Enrollment struct {
	ID           int              `json:"id"`
	StudentID    int              `json:"student_id"`
	CourseID     int              `json:"course_id"`
	CourseCode   string           `json:"course_code"`
	CourseName   string           `json:"course_name"`
	Credits      int              `json:"credits"`
	Section      int              `json:"section"`
	Status       EnrollmentStatus `json:"status"`
	Grade        string           `json:"grade,omitempty"`
	Semester     string           `json:"semester,omitempty"`
	AcademicYear int              `json:"academic_year"`
	Term         string           `json:"term"`
	CreatedAt    time.Time        `json:"created_at"`
}

// EnrollRequest persists a winning optimizer selection as enrollments.
type EnrollRequest struct {
	AcademicYear int                 `json:"academic_year" binding:"required,min=2000,max=2100"`
	Term         string              `json:"term" binding:"required,oneof=FALL SPRING SUMMER"`
	Selections   []SelectionRequest  `json:"selections" binding:"required,min=1,dive"`
}

// SelectionRequest names one chosen (course, section) pair.
type SelectionRequest struct {
	CourseCode string `json:"course_code" binding:"required,min=2,max=16"`
	Section    int    `json:"section" binding:"required,min=1,max=99"`
}
