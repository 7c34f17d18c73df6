package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/campusgate/exitpass/internal/app/models"
	"github.com/campusgate/exitpass/internal/app/repositories"
	"github.com/campusgate/exitpass/internal/pkg/apperrors"
	"github.com/campusgate/exitpass/internal/pkg/auth"
	"github.com/campusgate/exitpass/internal/pkg/logger"
	"github.com/campusgate/exitpass/internal/pkg/validation"
	"github.com/campusgate/exitpass/internal/storage"
)

// SessionKey is the blob the single current session persists under.
const SessionKey = "campus_pass_session"

// AdminUserID identifies the fixed administrator session.
const AdminUserID = "admin"

// AuthService is the identity gate: it resolves a caller into anonymous,
// student or admin, and owns the single-slot persisted session. The session
// is held explicitly on the service, loaded once at construction and torn
// down by Logout; there is no ambient global state.
type AuthService struct {
	store       storage.Store
	studentRepo *repositories.StudentRepository

	adminID   string
	adminHash string

	session *models.Session
}

// NewAuthService creates the identity gate, hashing the configured admin
// credential and restoring any persisted session.
func NewAuthService(ctx context.Context, store storage.Store, studentRepo *repositories.StudentRepository, adminID, adminPassword string) (*AuthService, error) {
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin credential: %w", err)
	}

	s := &AuthService{
		store:       store,
		studentRepo: studentRepo,
		adminID:     adminID,
		adminHash:   hash,
	}
	if err := s.restoreSession(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AuthService) restoreSession(ctx context.Context) error {
	blob, ok, err := s.store.Get(ctx, SessionKey)
	if err != nil {
		return fmt.Errorf("failed to read persisted session: %w", err)
	}
	if !ok {
		return nil
	}

	var session models.Session
	if err := json.Unmarshal(blob, &session); err != nil {
		// A corrupt session blob should not brick the app; start anonymous.
		logger.Warn().Err(err).Msg("Discarding unreadable persisted session")
		return nil
	}
	s.session = &session
	return nil
}

func (s *AuthService) persistSession(ctx context.Context) error {
	if s.session == nil {
		return s.store.Delete(ctx, SessionKey)
	}
	blob, err := json.Marshal(s.session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.store.Set(ctx, SessionKey, blob)
}

// Login stores the given identity as the current session, overwriting any
// prior session, and persists it.
func (s *AuthService) Login(ctx context.Context, session models.Session) error {
	s.session = &session
	return s.persistSession(ctx)
}

// Logout clears the current session, both in memory and persisted.
func (s *AuthService) Logout(ctx context.Context) error {
	s.session = nil
	return s.persistSession(ctx)
}

// RegisterStudentInput carries the registration form fields.
type RegisterStudentInput struct {
	Name          string `validate:"required,min=2,max=100"`
	RollNumber    string `validate:"required,rollnumber"`
	RoomNumber    string `validate:"required"`
	HostelName    string `validate:"required"`
	ContactNumber string `validate:"required,contactnumber"`
	PhotoURL      string `validate:"omitempty,url"`
}

// RegisterStudent creates (or, for an existing roll number, merges) the
// student record and makes it the current session with the student role.
func (s *AuthService) RegisterStudent(ctx context.Context, input RegisterStudentInput) (*models.Student, error) {
	if err := validation.Validator().Struct(input); err != nil {
		return nil, apperrors.NewValidationError("registration", err.Error())
	}

	student, err := s.studentRepo.Upsert(ctx, models.Student{
		ID:            uuid.NewString(),
		Name:          input.Name,
		RollNumber:    input.RollNumber,
		RoomNumber:    input.RoomNumber,
		HostelName:    input.HostelName,
		ContactNumber: input.ContactNumber,
		PhotoURL:      input.PhotoURL,
	})
	if err != nil {
		return nil, fmt.Errorf("error registering student: %w", err)
	}

	if err := s.Login(ctx, models.Session{
		UserID:     student.ID,
		Name:       student.Name,
		RollNumber: student.RollNumber,
		Role:       models.RoleStudent,
	}); err != nil {
		return nil, err
	}

	logger.Info().Str("rollNumber", student.RollNumber).Msg("Student registered")
	return student, nil
}

// LoginAsStudent resolves a roll number to a student session. No credential
// beyond existence of the roll number is checked.
func (s *AuthService) LoginAsStudent(ctx context.Context, rollNumber string) (*models.Session, error) {
	student, err := s.studentRepo.GetByRollNumber(ctx, rollNumber)
	if err != nil {
		return nil, err
	}

	session := models.Session{
		UserID:     student.ID,
		Name:       student.Name,
		RollNumber: student.RollNumber,
		Role:       models.RoleStudent,
	}
	if err := s.Login(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// LoginAsAdmin checks the fixed administrator credential pair. A failed
// match is the boolean false with a nil error and leaves the session
// unchanged; errors are reserved for storage failures. This is placeholder
// authentication, not a security boundary.
func (s *AuthService) LoginAsAdmin(ctx context.Context, adminID, password string) (bool, error) {
	if adminID != s.adminID || !auth.CheckPassword(s.adminHash, password) {
		return false, nil
	}

	err := s.Login(ctx, models.Session{
		UserID: AdminUserID,
		Name:   "Administrator",
		Role:   models.RoleAdmin,
	})
	if err != nil {
		return false, err
	}

	logger.Info().Msg("Administrator logged in")
	return true, nil
}

// Current returns a copy of the current session, or nil when anonymous.
func (s *AuthService) Current() *models.Session {
	if s.session == nil {
		return nil
	}
	session := *s.session
	return &session
}

// IsAuthenticated reports whether any session is active
func (s *AuthService) IsAuthenticated() bool {
	return s.session != nil
}

// IsAdmin reports whether the current session is an administrator
func (s *AuthService) IsAdmin() bool {
	return s.session.IsAdmin()
}

// IsStudent reports whether the current session is a student
func (s *AuthService) IsStudent() bool {
	return s.session.IsStudent()
}
