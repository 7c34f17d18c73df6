package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/exitpass/internal/app/models"
	"github.com/campusgate/exitpass/internal/app/repositories"
	"github.com/campusgate/exitpass/internal/pkg/apperrors"
	"github.com/campusgate/exitpass/internal/pkg/qrcode"
	"github.com/campusgate/exitpass/internal/storage"
)

type passFixture struct {
	studentRepo *repositories.StudentRepository
	passRepo    *repositories.PassRequestRepository
	service     *PassService
}

func newPassFixture(t *testing.T) *passFixture {
	t.Helper()
	store := storage.NewMemoryStore()
	studentRepo := repositories.NewStudentRepository(store)
	passRepo := repositories.NewPassRequestRepository(store, studentRepo)
	return &passFixture{
		studentRepo: studentRepo,
		passRepo:    passRepo,
		service:     NewPassService(passRepo, studentRepo, 0),
	}
}

func (f *passFixture) registerStudent(t *testing.T, ctx context.Context) *models.Student {
	t.Helper()
	student, err := f.studentRepo.Upsert(ctx, models.Student{
		Name:          "Asha Rao",
		RollNumber:    "CS-1021",
		RoomNumber:    "B-204",
		HostelName:    "North Hall",
		ContactNumber: "+15550001111",
	})
	require.NoError(t, err)
	return student
}

func (f *passFixture) submit(t *testing.T, ctx context.Context, studentID, roll string) *models.PassRequest {
	t.Helper()
	now := time.Now()
	request, err := f.service.Submit(ctx, SubmitPassInput{
		StudentID:     studentID,
		RollNumber:    roll,
		LeavingTime:   now.Add(time.Hour),
		ReturningTime: now.Add(4 * time.Hour),
		Purpose:       "medical appointment",
	})
	require.NoError(t, err)
	return request
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	ctx := context.Background()
	f := newPassFixture(t)
	student := f.registerStudent(t, ctx)

	before := time.Now()
	request := f.submit(t, ctx, student.ID, student.RollNumber)

	assert.Equal(t, models.PassStatusPending, request.Status)
	assert.False(t, request.NotificationSent)
	assert.Empty(t, request.QRCode)
	assert.False(t, request.CreatedAt.Before(before))
	assert.Equal(t, student.Name, request.StudentName)
}

func TestSubmitValidation(t *testing.T) {
	ctx := context.Background()
	f := newPassFixture(t)
	now := time.Now()

	tests := []struct {
		name    string
		input   SubmitPassInput
		message string
	}{
		{
			name: "leaving after returning",
			input: SubmitPassInput{
				StudentID:     "s1",
				RollNumber:    "CS-1021",
				LeavingTime:   now,
				ReturningTime: now.Add(-time.Hour),
				Purpose:       "errand",
			},
			message: "leaving time must be before returning time",
		},
		{
			name: "window longer than 24h",
			input: SubmitPassInput{
				StudentID:     "s1",
				RollNumber:    "CS-1021",
				LeavingTime:   now,
				ReturningTime: now.Add(25 * time.Hour),
				Purpose:       "trip",
			},
			message: "returning time cannot be more than 24 hours after leaving",
		},
		{
			name: "empty purpose",
			input: SubmitPassInput{
				StudentID:     "s1",
				RollNumber:    "CS-1021",
				LeavingTime:   now,
				ReturningTime: now.Add(time.Hour),
			},
			message: "purpose is required",
		},
		{
			name: "zero timestamps",
			input: SubmitPassInput{
				StudentID: "s1",
				Purpose:   "errand",
			},
			message: "invalid date or time format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Submit(ctx, tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	// No record was created by any rejected submission
	all, err := f.service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestApproveIssuesQRCode(t *testing.T) {
	ctx := context.Background()
	f := newPassFixture(t)
	student := f.registerStudent(t, ctx)
	request := f.submit(t, ctx, student.ID, student.RollNumber)

	approved, err := f.service.Approve(ctx, request.ID)
	require.NoError(t, err)

	assert.Equal(t, models.PassStatusApproved, approved.Status)
	assert.NotEmpty(t, approved.QRCode)
	assert.True(t, strings.HasPrefix(approved.QRCode, "data:"))
}

func TestApproveMissingRequest(t *testing.T) {
	ctx := context.Background()
	f := newPassFixture(t)

	_, err := f.service.Approve(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrPassNotFound)
}

func TestApproveWithDanglingStudentStillSucceeds(t *testing.T) {
	ctx := context.Background()
	f := newPassFixture(t)

	// No student record exists for this request at all
	request := f.submit(t, ctx, "ghost-student", "GH-0000")

	approved, err := f.service.Approve(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PassStatusApproved, approved.Status)
	assert.NotEmpty(t, approved.QRCode)
}

func TestRejectLeavesQRCodeUnset(t *testing.T) {
	ctx := context.Background()
	f := newPassFixture(t)
	student := f.registerStudent(t, ctx)
	request := f.submit(t, ctx, student.ID, student.RollNumber)

	rejected, err := f.service.Reject(ctx, request.ID)
	require.NoError(t, err)

	assert.Equal(t, models.PassStatusRejected, rejected.Status)
	assert.Empty(t, rejected.QRCode)
}

func TestTerminalRequestsCannotReTransition(t *testing.T) {
	ctx := context.Background()
	f := newPassFixture(t)
	student := f.registerStudent(t, ctx)

	approvedReq := f.submit(t, ctx, student.ID, student.RollNumber)
	_, err := f.service.Approve(ctx, approvedReq.ID)
	require.NoError(t, err)

	_, err = f.service.Approve(ctx, approvedReq.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotPending)
	_, err = f.service.Reject(ctx, approvedReq.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotPending)

	// A later rejection attempt never clears the issued QR code
	current, err := f.service.Get(ctx, approvedReq.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, current.QRCode)

	rejectedReq := f.submit(t, ctx, student.ID, student.RollNumber)
	_, err = f.service.Reject(ctx, rejectedReq.ID)
	require.NoError(t, err)
	_, err = f.service.Approve(ctx, rejectedReq.ID)
	assert.ErrorIs(t, err, apperrors.ErrRequestNotPending)
}

func TestNotifyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newPassFixture(t)
	student := f.registerStudent(t, ctx)
	request := f.submit(t, ctx, student.ID, student.RollNumber)

	// Notify before approval is refused
	_, err := f.service.Notify(ctx, request.ID)
	assert.ErrorIs(t, err, apperrors.ErrPassNotApproved)

	_, err = f.service.Approve(ctx, request.ID)
	require.NoError(t, err)

	first, err := f.service.Notify(ctx, request.ID)
	require.NoError(t, err)
	assert.True(t, first.NotificationSent)

	second, err := f.service.Notify(ctx, request.ID)
	require.NoError(t, err)
	assert.True(t, second.NotificationSent)
}

func TestApprovedPayloadFallsBackToDenormalizedFields(t *testing.T) {
	// Request whose student vanished: the payload resolves from the
	// denormalized copies, then "Unknown".
	request := &models.PassRequest{
		ID:            "r1",
		StudentID:     "gone",
		RollNumber:    "CS-1021",
		StudentName:   "Asha Rao",
		ContactNumber: "+15550001111",
		LeavingTime:   time.Now(),
		ReturningTime: time.Now().Add(2 * time.Hour),
		Purpose:       "errand",
		Status:        models.PassStatusPending,
	}

	payload := qrcode.BuildPayload(request, nil)
	assert.Equal(t, "Asha Rao", payload.Student.Name)
	assert.Equal(t, "+15550001111", payload.Student.ContactNumber)
	assert.Equal(t, qrcode.UnknownField, payload.Student.Hostel)
	assert.Equal(t, qrcode.UnknownField, payload.Student.RoomNumber)
}
