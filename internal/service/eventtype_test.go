package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
	"github.com/jlemaire/travel-planner/backend/internal/service"
)

// ---- helpers ---------------------------------------------------------------

func validEventType() domain.EventType {
	return domain.EventType{
		Name:     "Hotel",
		Category: "accommodation",
		Color:    "#FF5733",
		Icon:     "hotel",
	}
}

func noDuplicateRepo() *mockEventTypeRepo {
	return &mockEventTypeRepo{
		create: func(_ context.Context, et domain.EventType) (domain.EventType, error) { return et, nil },
		existsDuplicate: func(_ context.Context, _, _ string, _ int64) (bool, error) {
			return false, nil
		},
	}
}

func unusedTypeRepo() *mockEventRepo {
	return &mockEventRepo{
		countActiveByType: func(_ context.Context, _ int64) (int64, error) { return 0, nil },
	}
}

// ---- Create tests ----------------------------------------------------------

func TestEventTypeService_Create_Valid(t *testing.T) {
	svc := service.NewEventTypeService(noDuplicateRepo(), unusedTypeRepo())

	got, err := svc.Create(context.Background(), validEventType())

	require.NoError(t, err)
	assert.Equal(t, "Hotel", got.Name)
}

func TestEventTypeService_Create_InvalidCategory(t *testing.T) {
	svc := service.NewEventTypeService(noDuplicateRepo(), unusedTypeRepo())

	et := validEventType()
	et.Category = "lodging" // not in the allowed set

	_, err := svc.Create(context.Background(), et)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEventTypeService_Create_CategoryCaseInsensitive(t *testing.T) {
	svc := service.NewEventTypeService(noDuplicateRepo(), unusedTypeRepo())

	et := validEventType()
	et.Category = "ACCOMMODATION"

	_, err := svc.Create(context.Background(), et)

	assert.NoError(t, err)
}

func TestEventTypeService_Create_InvalidColor(t *testing.T) {
	svc := service.NewEventTypeService(noDuplicateRepo(), unusedTypeRepo())

	for _, color := range []string{"FF5733", "#FF573", "#GG5733", "red", ""} {
		et := validEventType()
		et.Color = color

		_, err := svc.Create(context.Background(), et)

		assert.ErrorIs(t, err, domain.ErrValidation, "color %q should be rejected", color)
	}
}

func TestEventTypeService_Create_Duplicate(t *testing.T) {
	r := noDuplicateRepo()
	r.existsDuplicate = func(_ context.Context, name, category string, excludeID int64) (bool, error) {
		assert.Equal(t, "Hotel", name)
		assert.Equal(t, "accommodation", category)
		assert.Zero(t, excludeID) // create-time check excludes nothing
		return true, nil
	}
	svc := service.NewEventTypeService(r, unusedTypeRepo())

	_, err := svc.Create(context.Background(), validEventType())

	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ---- List tests ------------------------------------------------------------

func TestEventTypeService_List_InvalidCategoryFilter(t *testing.T) {
	svc := service.NewEventTypeService(&mockEventTypeRepo{}, unusedTypeRepo())

	_, _, err := svc.List(context.Background(), domain.EventTypeFilter{Category: "bogus"}, domain.NewPageParams(nil, nil))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEventTypeService_List_OK(t *testing.T) {
	r := &mockEventTypeRepo{
		list: func(_ context.Context, f domain.EventTypeFilter, _ domain.PageParams) ([]domain.EventType, int64, error) {
			assert.Equal(t, "food", f.Category)
			return []domain.EventType{validEventType()}, 1, nil
		},
	}
	svc := service.NewEventTypeService(r, unusedTypeRepo())

	got, total, err := svc.List(context.Background(), domain.EventTypeFilter{Category: "food"}, domain.NewPageParams(nil, nil))

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), total)
}

// ---- Get tests -------------------------------------------------------------

func TestEventTypeService_Get_WithUsageCount(t *testing.T) {
	existing := validEventType()
	existing.ID = 3

	r := &mockEventTypeRepo{
		getByID: func(_ context.Context, _ int64) (domain.EventType, error) { return existing, nil },
	}
	events := &mockEventRepo{
		countActiveByType: func(_ context.Context, id int64) (int64, error) {
			assert.Equal(t, int64(3), id)
			return 5, nil
		},
	}
	svc := service.NewEventTypeService(r, events)

	got, usage, err := svc.Get(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, int64(5), usage)
}

func TestEventTypeService_Get_Deleted(t *testing.T) {
	existing := validEventType()
	existing.IsDeleted = true

	r := &mockEventTypeRepo{
		getByID: func(_ context.Context, _ int64) (domain.EventType, error) { return existing, nil },
	}
	svc := service.NewEventTypeService(r, unusedTypeRepo())

	_, _, err := svc.Get(context.Background(), 3)

	assert.ErrorIs(t, err, domain.ErrGone)
}

// ---- Update tests ----------------------------------------------------------

func activeTypeRepo(existing domain.EventType) *mockEventTypeRepo {
	return &mockEventTypeRepo{
		getByID: func(_ context.Context, _ int64) (domain.EventType, error) { return existing, nil },
		existsDuplicate: func(_ context.Context, _, _ string, _ int64) (bool, error) {
			return false, nil
		},
		update: func(_ context.Context, _ int64, patch domain.EventTypePatch) (domain.EventType, error) {
			updated := existing
			if patch.Name != nil {
				updated.Name = *patch.Name
			}
			if patch.Color != nil {
				updated.Color = *patch.Color
			}
			return updated, nil
		},
	}
}

func TestEventTypeService_Update_Valid(t *testing.T) {
	existing := validEventType()
	existing.ID = 1
	svc := service.NewEventTypeService(activeTypeRepo(existing), unusedTypeRepo())

	color := "#00FF00"
	got, err := svc.Update(context.Background(), 1, domain.EventTypePatch{Color: &color})

	require.NoError(t, err)
	assert.Equal(t, "#00FF00", got.Color)
}

func TestEventTypeService_Update_EmptyPatch(t *testing.T) {
	svc := service.NewEventTypeService(activeTypeRepo(validEventType()), unusedTypeRepo())

	_, err := svc.Update(context.Background(), 1, domain.EventTypePatch{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEventTypeService_Update_DuplicateExcludesSelf(t *testing.T) {
	existing := validEventType()
	existing.ID = 9

	r := activeTypeRepo(existing)
	r.existsDuplicate = func(_ context.Context, name, category string, excludeID int64) (bool, error) {
		// Renaming only: the category must come from the stored row, and
		// the row itself must be excluded from the check.
		assert.Equal(t, "Hostel", name)
		assert.Equal(t, "accommodation", category)
		assert.Equal(t, int64(9), excludeID)
		return true, nil
	}
	svc := service.NewEventTypeService(r, unusedTypeRepo())

	name := "Hostel"
	_, err := svc.Update(context.Background(), 9, domain.EventTypePatch{Name: &name})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestEventTypeService_Update_ColorOnlySkipsDuplicateCheck(t *testing.T) {
	r := activeTypeRepo(validEventType())
	r.existsDuplicate = func(_ context.Context, _, _ string, _ int64) (bool, error) {
		t.Fatal("duplicate check should not run when neither name nor category changes")
		return false, nil
	}
	svc := service.NewEventTypeService(r, unusedTypeRepo())

	color := "#123ABC"
	_, err := svc.Update(context.Background(), 1, domain.EventTypePatch{Color: &color})

	assert.NoError(t, err)
}

// ---- SoftDelete tests ------------------------------------------------------

func TestEventTypeService_SoftDelete_OK(t *testing.T) {
	now := time.Now()
	r := activeTypeRepo(validEventType())
	r.softDelete = func(_ context.Context, _ int64) (time.Time, error) { return now, nil }
	svc := service.NewEventTypeService(r, unusedTypeRepo())

	deletedAt, err := svc.SoftDelete(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, now, deletedAt)
}

func TestEventTypeService_SoftDelete_InUse(t *testing.T) {
	existing := validEventType()
	existing.Name = "Hotel"
	r := activeTypeRepo(existing)
	events := &mockEventRepo{
		countActiveByType: func(_ context.Context, _ int64) (int64, error) { return 4, nil },
	}
	svc := service.NewEventTypeService(r, events)

	_, err := svc.SoftDelete(context.Background(), 1)

	// The error is a conflict and carries the reference count for the
	// handler to surface.
	assert.ErrorIs(t, err, domain.ErrConflict)
	var inUse *domain.InUseError
	require.ErrorAs(t, err, &inUse)
	assert.Equal(t, "Hotel", inUse.Name)
	assert.Equal(t, int64(4), inUse.Count)
}

func TestEventTypeService_SoftDelete_AlreadyDeleted(t *testing.T) {
	existing := validEventType()
	existing.IsDeleted = true
	svc := service.NewEventTypeService(activeTypeRepo(existing), unusedTypeRepo())

	_, err := svc.SoftDelete(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ---- Restore tests ---------------------------------------------------------

func TestEventTypeService_Restore_OK(t *testing.T) {
	existing := validEventType()
	existing.IsDeleted = true
	restored := existing
	restored.IsDeleted = false

	r := &mockEventTypeRepo{
		getByID: func(_ context.Context, _ int64) (domain.EventType, error) { return existing, nil },
		restore: func(_ context.Context, _ int64) (domain.EventType, error) { return restored, nil },
	}
	svc := service.NewEventTypeService(r, unusedTypeRepo())

	got, err := svc.Restore(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, got.IsDeleted)
}

func TestEventTypeService_Restore_NotDeleted(t *testing.T) {
	svc := service.NewEventTypeService(activeTypeRepo(validEventType()), unusedTypeRepo())

	_, err := svc.Restore(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrConflict)
}
