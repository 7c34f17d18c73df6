package models

import "time"

// PassStatus is the lifecycle state of a pass request.
type PassStatus string

const (
	// PassStatusPending is the initial state of every request
	PassStatusPending PassStatus = "pending"
	// PassStatusApproved is terminal; approval issues the QR code
	PassStatusApproved PassStatus = "approved"
	// PassStatusRejected is terminal; no QR code is involved
	PassStatusRejected PassStatus = "rejected"
)

// PassRequest defines an exit-pass request. StudentName and ContactNumber
// are denormalized copies captured at creation so the pass stays displayable
// even if the Student record later changes or goes missing.
type PassRequest struct {
	ID               string     `json:"id"`                      // Unique identifier, assigned at creation, immutable
	StudentID        string     `json:"studentId"`               // Owning student; dangling references are tolerated
	RollNumber       string     `json:"rollNumber"`              // Student's roll number at creation time
	StudentName      string     `json:"studentName,omitempty"`   // Denormalized student name
	ContactNumber    string     `json:"contactNumber,omitempty"` // Denormalized contact number
	LeavingTime      time.Time  `json:"leavingTime"`             // When the student leaves campus
	ReturningTime    time.Time  `json:"returningTime"`           // When the student returns; at most 24h after leaving
	Purpose          string     `json:"purpose"`                 // Free-text reason for the pass
	Status           PassStatus `json:"status"`                  // pending, approved or rejected
	QRCode           string     `json:"qrCode,omitempty"`        // Set on approval, never cleared afterwards
	NotificationSent bool       `json:"notificationSent"`        // Whether the student was notified about the decision
	CreatedAt        time.Time  `json:"createdAt"`               // Set once at creation, immutable
}

// PassRequestPatch is a partial update for a PassRequest. Nil fields are
// retained from the stored record; set fields overwrite it.
type PassRequestPatch struct {
	Status           *PassStatus
	QRCode           *string
	NotificationSent *bool
}

// Apply merges the patch onto r, field by field.
func (p PassRequestPatch) Apply(r *PassRequest) {
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.QRCode != nil {
		r.QRCode = *p.QRCode
	}
	if p.NotificationSent != nil {
		r.NotificationSent = *p.NotificationSent
	}
}
