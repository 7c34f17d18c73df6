package models

// Student defines a registered student record. RollNumber is the unique
// business key; ID is the opaque internal identifier.
type Student struct {
	ID            string `json:"id"`            // Unique identifier, assigned at creation, immutable
	Name          string `json:"name"`          // Student's full name
	RollNumber    string `json:"rollNumber"`    // Business-unique roll number
	RoomNumber    string `json:"roomNumber"`    // Hostel room number
	HostelName    string `json:"hostelName"`    // Hostel the student lives in
	ContactNumber string `json:"contactNumber"` // Phone number for notifications
	PhotoURL      string `json:"photoUrl"`      // URL of the student's photo
}
