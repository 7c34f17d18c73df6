// Package qrcode assembles and encodes the scannable pass payload.
//
// The payload is plain JSON with no integrity protection; the contract is
// only that a verifier can read the structured fields back out of the scan.
package qrcode

import (
	"encoding/base64"
	"encoding/json"
	"time"

	qr "github.com/skip2/go-qrcode"

	"github.com/campusgate/exitpass/internal/app/models"
)

// UnknownField substitutes student fields that cannot be resolved at all.
const UnknownField = "Unknown"

// DefaultSize is the rendered QR image size in pixels.
const DefaultSize = 300

// StudentInfo is the student portion of the pass payload.
type StudentInfo struct {
	Name          string `json:"name"`
	RollNumber    string `json:"rollNumber"`
	Hostel        string `json:"hostel"`
	RoomNumber    string `json:"roomNumber"`
	ContactNumber string `json:"contactNumber"`
}

// PassInfo is the pass portion of the payload.
type PassInfo struct {
	LeavingTime   time.Time         `json:"leavingTime"`
	ReturningTime time.Time         `json:"returningTime"`
	Purpose       string            `json:"purpose"`
	Status        models.PassStatus `json:"status"`
	IssuedAt      time.Time         `json:"issuedAt"`
}

// Payload is the structured record encoded into the pass image.
type Payload struct {
	ID      string      `json:"id"`
	Student StudentInfo `json:"student"`
	Pass    PassInfo    `json:"pass"`
}

// BuildPayload assembles the payload for a pass request. Student fields are
// resolved from the Student record when available, then from the request's
// denormalized copies, then to "Unknown". IssuedAt is the moment of assembly.
func BuildPayload(request *models.PassRequest, student *models.Student) Payload {
	info := StudentInfo{
		Name:          UnknownField,
		RollNumber:    request.RollNumber,
		Hostel:        UnknownField,
		RoomNumber:    UnknownField,
		ContactNumber: UnknownField,
	}

	if request.StudentName != "" {
		info.Name = request.StudentName
	}
	if request.ContactNumber != "" {
		info.ContactNumber = request.ContactNumber
	}

	if student != nil {
		if student.Name != "" {
			info.Name = student.Name
		}
		if student.HostelName != "" {
			info.Hostel = student.HostelName
		}
		if student.RoomNumber != "" {
			info.RoomNumber = student.RoomNumber
		}
		if student.ContactNumber != "" {
			info.ContactNumber = student.ContactNumber
		}
	}

	return Payload{
		ID:      request.ID,
		Student: info,
		Pass: PassInfo{
			LeavingTime:   request.LeavingTime,
			ReturningTime: request.ReturningTime,
			Purpose:       request.Purpose,
			Status:        request.Status,
			IssuedAt:      time.Now(),
		},
	}
}

// Encode renders the payload as a PNG QR image wrapped in a data URL.
// The highest recovery level keeps the dense JSON scannable on worn prints.
func Encode(payload Payload, size int) (string, error) {
	if size <= 0 {
		size = DefaultSize
	}

	blob, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	png, err := qr.Encode(string(blob), qr.Highest, size)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// EncodeFallback produces the minimal opaque payload used when image
// encoding fails: base64 of the payload JSON. Marshalling a Payload cannot
// fail, so approval always gets a code.
func EncodeFallback(payload Payload) string {
	blob, err := json.Marshal(payload)
	if err != nil {
		blob = []byte(`{}`)
	}
	return "data:application/json;base64," + base64.StdEncoding.EncodeToString(blob)
}

// Decode reads the structured payload back out of a fallback-encoded data
// URL. Used by tests and verifier tooling; the PNG form is decoded by a
// scanner, not by this package.
func Decode(dataURL string) (*Payload, error) {
	const prefix = "data:application/json;base64,"
	raw := dataURL
	if len(raw) > len(prefix) && raw[:len(prefix)] == prefix {
		raw = raw[len(prefix):]
	}

	blob, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}

	var payload Payload
	if err := json.Unmarshal(blob, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
