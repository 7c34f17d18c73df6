package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campusgate/exitpass/internal/app/models"
	"github.com/campusgate/exitpass/internal/app/repositories"
	"github.com/campusgate/exitpass/internal/pkg/apperrors"
	"github.com/campusgate/exitpass/internal/pkg/logger"
	"github.com/campusgate/exitpass/internal/pkg/qrcode"
)

// MaxPassDuration is the longest span a single exit pass may cover.
const MaxPassDuration = 24 * time.Hour

// PassService enforces the pass request state machine and coordinates
// QR issuance.
type PassService struct {
	passRepo    *repositories.PassRequestRepository
	studentRepo *repositories.StudentRepository
	qrSize      int
}

// NewPassService creates a new pass service instance
func NewPassService(passRepo *repositories.PassRequestRepository, studentRepo *repositories.StudentRepository, qrSize int) *PassService {
	if qrSize <= 0 {
		qrSize = qrcode.DefaultSize
	}
	return &PassService{
		passRepo:    passRepo,
		studentRepo: studentRepo,
		qrSize:      qrSize,
	}
}

// SubmitPassInput carries a student's pass request.
type SubmitPassInput struct {
	StudentID     string
	RollNumber    string
	LeavingTime   time.Time
	ReturningTime time.Time
	Purpose       string
}

func (s *PassService) validateSubmit(input SubmitPassInput) error {
	if input.StudentID == "" {
		return apperrors.NewValidationError("studentId", "student reference is required")
	}
	if input.LeavingTime.IsZero() || input.ReturningTime.IsZero() {
		return apperrors.NewValidationError("time", "invalid date or time format")
	}
	if !input.LeavingTime.Before(input.ReturningTime) {
		return apperrors.NewValidationError("time", "leaving time must be before returning time")
	}
	if input.ReturningTime.Sub(input.LeavingTime) > MaxPassDuration {
		return apperrors.NewValidationError("time", "returning time cannot be more than 24 hours after leaving")
	}
	if input.Purpose == "" {
		return apperrors.NewValidationError("purpose", "purpose is required")
	}
	return nil
}

// Submit validates the request and creates it in the pending state.
// Validation failures return a *apperrors.ValidationError and create nothing.
func (s *PassService) Submit(ctx context.Context, input SubmitPassInput) (*models.PassRequest, error) {
	if err := s.validateSubmit(input); err != nil {
		return nil, err
	}

	request, err := s.passRepo.Create(ctx, models.PassRequest{
		StudentID:     input.StudentID,
		RollNumber:    input.RollNumber,
		LeavingTime:   input.LeavingTime,
		ReturningTime: input.ReturningTime,
		Purpose:       input.Purpose,
		Status:        models.PassStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating pass request: %w", err)
	}

	logger.Info().
		Str("requestId", request.ID).
		Str("rollNumber", request.RollNumber).
		Msg("Pass request submitted")
	return request, nil
}

// Approve transitions a pending request to approved and attaches its
// QR code. QR image encoding failure degrades to the opaque fallback
// payload so the approval still completes.
func (s *PassService) Approve(ctx context.Context, id string) (*models.PassRequest, error) {
	request, err := s.passRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.PassStatusPending {
		return nil, apperrors.ErrRequestNotPending
	}

	payload := qrcode.BuildPayload(request, s.lookupStudent(ctx, request.RollNumber))
	code, err := qrcode.Encode(payload, s.qrSize)
	if err != nil {
		logger.Warn().Err(err).Str("requestId", id).Msg("QR image encoding failed, using fallback payload")
		code = qrcode.EncodeFallback(payload)
	}

	status := models.PassStatusApproved
	updated, err := s.passRepo.Update(ctx, id, models.PassRequestPatch{
		Status: &status,
		QRCode: &code,
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("requestId", id).Msg("Pass request approved")
	return updated, nil
}

// Reject transitions a pending request to rejected. No QR code is involved.
func (s *PassService) Reject(ctx context.Context, id string) (*models.PassRequest, error) {
	request, err := s.passRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.PassStatusPending {
		return nil, apperrors.ErrRequestNotPending
	}

	status := models.PassStatusRejected
	updated, err := s.passRepo.Update(ctx, id, models.PassRequestPatch{Status: &status})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("requestId", id).Msg("Pass request rejected")
	return updated, nil
}

// Notify marks an approved request as notified. The notification itself is
// simulated: it is logged, not transmitted. Safe to call repeatedly.
func (s *PassService) Notify(ctx context.Context, id string) (*models.PassRequest, error) {
	request, err := s.passRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.PassStatusApproved || request.QRCode == "" {
		return nil, apperrors.ErrPassNotApproved
	}

	logger.Info().
		Str("requestId", request.ID).
		Str("studentName", request.StudentName).
		Str("contactNumber", request.ContactNumber).
		Msg("Notification sent to student about approved pass")

	sent := true
	return s.passRepo.Update(ctx, id, models.PassRequestPatch{NotificationSent: &sent})
}

// List returns every pass request in creation order.
func (s *PassService) List(ctx context.Context) ([]models.PassRequest, error) {
	return s.passRepo.List(ctx)
}

// ListForStudent returns the requests owned by the given student.
func (s *PassService) ListForStudent(ctx context.Context, studentID string) ([]models.PassRequest, error) {
	return s.passRepo.ListByStudent(ctx, studentID)
}

// Get returns a single request by ID.
func (s *PassService) Get(ctx context.Context, id string) (*models.PassRequest, error) {
	return s.passRepo.GetByID(ctx, id)
}

// lookupStudent resolves the student behind a roll number for payload
// assembly. Absence is fine; the payload falls back to denormalized fields.
func (s *PassService) lookupStudent(ctx context.Context, rollNumber string) *models.Student {
	student, err := s.studentRepo.GetByRollNumber(ctx, rollNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			logger.Warn().Err(err).Str("rollNumber", rollNumber).Msg("Student lookup failed during QR assembly")
		}
		return nil
	}
	return student
}
