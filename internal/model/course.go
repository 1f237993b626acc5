package model

import "time"

// Course is an academic offering identified by its code (e.g. "CS202").
type Course struct {
	ID         int       `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Credits    int       `json:"credits"`
	Instructor string    `json:"instructor"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SectionSummary counts the slots of one section for catalog display.
type SectionSummary struct {
	Section   int `json:"section"`
	SlotCount int `json:"count"`
}

// CatalogEntry is one course in the term catalog with its section layout.
type CatalogEntry struct {
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	Credits         int              `json:"credits"`
	LectureSections []SectionSummary `json:"lecture_sections"`
	LabSections     []SectionSummary `json:"lab_sections"`
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Code       string `json:"code" binding:"required,min=2,max=16"`
	Name       string `json:"name" binding:"required,min=2,max=120"`
	Credits    int    `json:"credits" binding:"required,min=1,max=12"`
	Instructor string `json:"instructor" binding:"omitempty,max=120"`
}

// UpdateCourseRequest is the payload for updating a course.
type UpdateCourseRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=120"`
	Credits    int    `json:"credits" binding:"required,min=1,max=12"`
	Instructor string `json:"instructor" binding:"omitempty,max=120"`
}
