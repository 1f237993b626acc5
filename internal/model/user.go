package model

import "time"

// Role distinguishes the two account kinds the portal serves.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
)

// User is a portal account. Students additionally own a Student record.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Student is the academic profile attached to a student user.
type Student struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	Program    string `json:"program"`
	CohortYear int    `json:"cohort_year"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
