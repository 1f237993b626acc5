package model

// OptimizeRequest asks for a conflict-free section assignment covering
// the requested courses in one term.
type OptimizeRequest struct {
	CourseCodes  []string `json:"course_codes" binding:"omitempty,max=12,dive,min=2,max=16"`
	AcademicYear int      `json:"academic_year" binding:"required,min=2000,max=2100"`
	Term         string   `json:"term" binding:"required,oneof=FALL SPRING SUMMER"`
}
