package models

// Role is the capability class of the current session.
type Role string

const (
	// RoleStudent can submit pass requests and list their own
	RoleStudent Role = "student"
	// RoleAdmin can approve, reject and notify
	RoleAdmin Role = "admin"
)

// Session is the single current-identity record held by the identity gate.
type Session struct {
	UserID     string `json:"userId"`               // Student ID, or the fixed admin identifier
	Name       string `json:"name"`                 // Display name
	RollNumber string `json:"rollNumber,omitempty"` // Set for student sessions only
	Role       Role   `json:"role"`                 // student or admin
}

// IsAdmin reports whether the session belongs to an administrator
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// IsStudent reports whether the session belongs to a student
func (s *Session) IsStudent() bool {
	return s != nil && s.Role == RoleStudent
}
