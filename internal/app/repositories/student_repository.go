package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/campusgate/exitpass/internal/app/models"
	"github.com/campusgate/exitpass/internal/pkg/apperrors"
	"github.com/campusgate/exitpass/internal/storage"
)

// StudentRepository handles persistence for the Students collection.
type StudentRepository struct {
	store storage.Store
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(store storage.Store) *StudentRepository {
	return &StudentRepository{store: store}
}

// studentIndex carries the decoded collection together with lookup maps.
// The maps are rebuilt on every load; the slice keeps insertion order.
type studentIndex struct {
	records []models.Student
	byID    map[string]int
	byRoll  map[string]int
}

func (r *StudentRepository) load(ctx context.Context) (*studentIndex, error) {
	blob, ok, err := r.store.Get(ctx, StudentsKey)
	if err != nil {
		return nil, err
	}

	idx := &studentIndex{
		byID:   make(map[string]int),
		byRoll: make(map[string]int),
	}
	if ok {
		if err := json.Unmarshal(blob, &idx.records); err != nil {
			return nil, fmt.Errorf("failed to decode students collection: %w", err)
		}
	}
	for i, s := range idx.records {
		idx.byID[s.ID] = i
		// First record wins for duplicate roll numbers, matching
		// first-match linear scan semantics.
		if _, exists := idx.byRoll[s.RollNumber]; !exists {
			idx.byRoll[s.RollNumber] = i
		}
	}
	return idx, nil
}

func (r *StudentRepository) save(ctx context.Context, records []models.Student) error {
	blob, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode students collection: %w", err)
	}
	return r.store.Set(ctx, StudentsKey, blob)
}

// List returns all students in insertion order.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	idx, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return idx.records, nil
}

// Upsert saves a student keyed by roll number. An existing record is merged
// in place (incoming fields win, the stored ID is kept); otherwise the
// student is appended with a fresh ID if none was assigned yet. Returns the
// record as persisted.
func (r *StudentRepository) Upsert(ctx context.Context, student models.Student) (*models.Student, error) {
	idx, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	if i, ok := idx.byRoll[student.RollNumber]; ok {
		student.ID = idx.records[i].ID
		idx.records[i] = student
	} else {
		if student.ID == "" {
			student.ID = uuid.NewString()
		}
		idx.records = append(idx.records, student)
	}

	if err := r.save(ctx, idx.records); err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByRollNumber returns the first student with the given roll number.
func (r *StudentRepository) GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	idx, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	i, ok := idx.byRoll[rollNumber]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	student := idx.records[i]
	return &student, nil
}

// GetByID returns the student with the given ID.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	idx, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	i, ok := idx.byID[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	student := idx.records[i]
	return &student, nil
}
