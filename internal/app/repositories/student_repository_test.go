package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/exitpass/internal/app/models"
	"github.com/campusgate/exitpass/internal/pkg/apperrors"
	"github.com/campusgate/exitpass/internal/storage"
)

func newStudentRepo(t *testing.T) *StudentRepository {
	t.Helper()
	return NewStudentRepository(storage.NewMemoryStore())
}

func TestUpsertAppendsAndAssignsID(t *testing.T) {
	ctx := context.Background()
	repo := newStudentRepo(t)

	student, err := repo.Upsert(ctx, models.Student{
		Name:       "Asha Rao",
		RollNumber: "CS-1021",
		RoomNumber: "B-204",
		HostelName: "North Hall",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Asha Rao", all[0].Name)
}

func TestUpsertMergesByRollNumber(t *testing.T) {
	ctx := context.Background()
	repo := newStudentRepo(t)

	first, err := repo.Upsert(ctx, models.Student{
		Name:          "Asha Rao",
		RollNumber:    "CS-1021",
		RoomNumber:    "B-204",
		HostelName:    "North Hall",
		ContactNumber: "+15550001111",
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, models.Student{
		ID:            "ignored-incoming-id",
		Name:          "Asha R. Rao",
		RollNumber:    "CS-1021",
		RoomNumber:    "C-110",
		HostelName:    "North Hall",
		ContactNumber: "+15550002222",
	})
	require.NoError(t, err)

	// Exactly one stored record; later fields win, the original ID survives
	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Asha R. Rao", all[0].Name)
	assert.Equal(t, "C-110", all[0].RoomNumber)
	assert.Equal(t, "+15550002222", all[0].ContactNumber)
}

func TestGetByRollNumberAndID(t *testing.T) {
	ctx := context.Background()
	repo := newStudentRepo(t)

	created, err := repo.Upsert(ctx, models.Student{Name: "Ben Okafor", RollNumber: "EE-2040"})
	require.NoError(t, err)

	byRoll, err := repo.GetByRollNumber(ctx, "EE-2040")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byRoll.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ben Okafor", byID.Name)

	_, err = repo.GetByRollNumber(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := newStudentRepo(t)

	rolls := []string{"CS-1021", "EE-2040", "ME-3103"}
	for i, roll := range rolls {
		_, err := repo.Upsert(ctx, models.Student{Name: "Student", RollNumber: roll, RoomNumber: string(rune('A' + i))})
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(rolls))
	for i, roll := range rolls {
		assert.Equal(t, roll, all[i].RollNumber)
	}
}
