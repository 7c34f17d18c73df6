package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campusgate/exitpass/internal/app/models"
	"github.com/campusgate/exitpass/internal/pkg/apperrors"
	"github.com/campusgate/exitpass/internal/storage"
)

// PassRequestRepository handles persistence for the PassRequests collection.
// It consults the student repository to denormalize display fields at
// creation time.
type PassRequestRepository struct {
	store       storage.Store
	studentRepo *StudentRepository
}

// NewPassRequestRepository creates a new pass request repository
func NewPassRequestRepository(store storage.Store, studentRepo *StudentRepository) *PassRequestRepository {
	return &PassRequestRepository{store: store, studentRepo: studentRepo}
}

type passIndex struct {
	records []models.PassRequest
	byID    map[string]int
}

func (r *PassRequestRepository) load(ctx context.Context) (*passIndex, error) {
	blob, ok, err := r.store.Get(ctx, PassRequestsKey)
	if err != nil {
		return nil, err
	}

	idx := &passIndex{byID: make(map[string]int)}
	if ok {
		if err := json.Unmarshal(blob, &idx.records); err != nil {
			return nil, fmt.Errorf("failed to decode pass requests collection: %w", err)
		}
	}
	for i, p := range idx.records {
		idx.byID[p.ID] = i
	}
	return idx, nil
}

func (r *PassRequestRepository) save(ctx context.Context, records []models.PassRequest) error {
	blob, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode pass requests collection: %w", err)
	}
	return r.store.Set(ctx, PassRequestsKey, blob)
}

// List returns all pass requests in insertion order.
func (r *PassRequestRepository) List(ctx context.Context) ([]models.PassRequest, error) {
	idx, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return idx.records, nil
}

// Create assigns an ID and creation time to the request, captures the
// owning student's name and contact number (best effort; a missing student
// leaves them empty), appends it to the collection and persists. Returns
// the record as stored.
func (r *PassRequestRepository) Create(ctx context.Context, request models.PassRequest) (*models.PassRequest, error) {
	idx, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	request.ID = uuid.NewString()
	request.CreatedAt = time.Now()
	request.NotificationSent = false
	request.QRCode = ""

	student, err := r.studentRepo.GetByID(ctx, request.StudentID)
	switch {
	case err == nil:
		request.StudentName = student.Name
		request.ContactNumber = student.ContactNumber
	case errors.Is(err, apperrors.ErrStudentNotFound):
		// Dangling reference: keep whatever the caller supplied
	default:
		return nil, err
	}

	idx.records = append(idx.records, request)
	if err := r.save(ctx, idx.records); err != nil {
		return nil, err
	}
	return &request, nil
}

// Update merges the patch onto the stored request and persists the
// collection. Returns the updated record.
func (r *PassRequestRepository) Update(ctx context.Context, id string, patch models.PassRequestPatch) (*models.PassRequest, error) {
	idx, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	i, ok := idx.byID[id]
	if !ok {
		return nil, apperrors.ErrPassNotFound
	}

	patch.Apply(&idx.records[i])
	if err := r.save(ctx, idx.records); err != nil {
		return nil, err
	}
	updated := idx.records[i]
	return &updated, nil
}

// GetByID returns the pass request with the given ID.
func (r *PassRequestRepository) GetByID(ctx context.Context, id string) (*models.PassRequest, error) {
	idx, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	i, ok := idx.byID[id]
	if !ok {
		return nil, apperrors.ErrPassNotFound
	}
	request := idx.records[i]
	return &request, nil
}

// ListByStudent returns the requests owned by studentID, in creation order.
func (r *PassRequestRepository) ListByStudent(ctx context.Context, studentID string) ([]models.PassRequest, error) {
	idx, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.PassRequest
	for _, p := range idx.records {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}
