package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/rentease/rentease-backend/internal/app/model"
	"github.com/rentease/rentease-backend/internal/app/repository"
	"github.com/rentease/rentease-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMediaStore returns deterministic URLs on upload and records every
// delete so tests can assert exactly which objects were removed
type fakeMediaStore struct {
	uploads   int
	deleted   []string
	uploadErr error
	deleteErr error
}

func (m *fakeMediaStore) Upload(_ context.Context, file *multipart.FileHeader) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	m.uploads++
	return fmt.Sprintf("https://cdn.test/properties/obj-%d", m.uploads), nil
}

func (m *fakeMediaStore) Delete(_ context.Context, objectID string) error {
	m.deleted = append(m.deleted, objectID)
	return m.deleteErr
}

func setupPropertyServiceTest(t *testing.T) (PropertyService, *fakeMediaStore, repository.PropertyRepository) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	propertyRepo := repository.NewPropertyRepository(testDB)
	media := &fakeMediaStore{}
	svc := NewPropertyService(propertyRepo, media)

	return svc, media, propertyRepo
}

func testInput(title string) PropertyInput {
	return PropertyInput{
		Type:     model.CategoryPG,
		Title:    title,
		Location: "Koramangala, Bangalore",
		Price:    "12000",
		Beds:     1,
		Baths:    1,
	}
}

func fileHeaders(n int) []*multipart.FileHeader {
	files := make([]*multipart.FileHeader, n)
	for i := range files {
		files[i] = &multipart.FileHeader{Filename: fmt.Sprintf("photo-%d.jpg", i)}
	}
	return files
}

func TestPropertyService_Create(t *testing.T) {
	svc, media, _ := setupPropertyServiceTest(t)
	ctx := context.Background()

	t.Run("Valid listing with uploads", func(t *testing.T) {
		property, err := svc.Create(ctx, 1, testInput("PG near Forum Mall"), fileHeaders(2))
		require.NoError(t, err)
		require.NotNil(t, property)

		assert.Equal(t, uint(1), property.UserID)
		assert.Equal(t, []string{
			"https://cdn.test/properties/obj-1",
			"https://cdn.test/properties/obj-2",
		}, property.Images)
		assert.Equal(t, model.GenderAny, property.Gender)
		assert.Equal(t, "Available", property.Availability)
	})

	t.Run("Too many uploads", func(t *testing.T) {
		_, err := svc.Create(ctx, 1, testInput("Overloaded"), fileHeaders(6))
		assert.ErrorIs(t, err, ErrTooManyImages)
	})

	t.Run("Invalid category", func(t *testing.T) {
		input := testInput("Castle")
		input.Type = "Castle"
		_, err := svc.Create(ctx, 1, input, nil)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("Upload failure", func(t *testing.T) {
		media.uploadErr = fmt.Errorf("s3 unavailable")
		defer func() { media.uploadErr = nil }()

		_, err := svc.Create(ctx, 1, testInput("Unlucky"), fileHeaders(1))
		assert.ErrorIs(t, err, ErrUploadFailed)
	})
}

func TestPropertyService_Update_ReconcilesImages(t *testing.T) {
	svc, media, _ := setupPropertyServiceTest(t)
	ctx := context.Background()

	// Listing starts with images obj-1, obj-2, obj-3
	property, err := svc.Create(ctx, 1, testInput("Three photos"), fileHeaders(3))
	require.NoError(t, err)
	imgA, imgC := property.Images[0], property.Images[2]

	// Keep A and C, add one new upload; B must be removed from storage
	updated, err := svc.Update(ctx, 1, property.ID, testInput("Three photos"), []string{imgA, imgC}, fileHeaders(1))
	require.NoError(t, err)

	assert.Equal(t, []string{imgA, imgC, "https://cdn.test/properties/obj-4"}, updated.Images)
	assert.Equal(t, []string{"obj-2"}, media.deleted)
}

func TestPropertyService_Update_NoChangesDeletesNothing(t *testing.T) {
	svc, media, _ := setupPropertyServiceTest(t)
	ctx := context.Background()

	property, err := svc.Create(ctx, 1, testInput("Stable"), fileHeaders(2))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, property.ID, testInput("Stable"), property.Images, nil)
	require.NoError(t, err)

	assert.Equal(t, property.Images, updated.Images)
	assert.Empty(t, media.deleted)
}

func TestPropertyService_Update_DropAllImages(t *testing.T) {
	svc, media, _ := setupPropertyServiceTest(t)
	ctx := context.Background()

	property, err := svc.Create(ctx, 1, testInput("Cleared"), fileHeaders(2))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, property.ID, testInput("Cleared"), nil, nil)
	require.NoError(t, err)

	assert.Empty(t, updated.Images)
	assert.ElementsMatch(t, []string{"obj-1", "obj-2"}, media.deleted)
}

func TestPropertyService_Update_TooManyImagesCountsKeptAndNew(t *testing.T) {
	svc, media, _ := setupPropertyServiceTest(t)
	ctx := context.Background()

	property, err := svc.Create(ctx, 1, testInput("Full"), fileHeaders(4))
	require.NoError(t, err)

	// 4 kept + 2 new exceeds the cap; nothing must be uploaded or deleted
	_, err = svc.Update(ctx, 1, property.ID, testInput("Full"), property.Images, fileHeaders(2))
	assert.ErrorIs(t, err, ErrTooManyImages)
	assert.Equal(t, 4, media.uploads)
	assert.Empty(t, media.deleted)
}

func TestPropertyService_Update_OwnershipEnforced(t *testing.T) {
	svc, media, _ := setupPropertyServiceTest(t)
	ctx := context.Background()

	property, err := svc.Create(ctx, 1, testInput("Owned by user 1"), fileHeaders(1))
	require.NoError(t, err)

	// Another user cannot tell this listing apart from a missing one
	_, err = svc.Update(ctx, 2, property.ID, testInput("Hijack"), nil, nil)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	assert.Empty(t, media.deleted)

	// The listing is untouched
	unchanged, err := svc.GetByID(property.ID)
	require.NoError(t, err)
	assert.Equal(t, "Owned by user 1", unchanged.Title)
	assert.Len(t, unchanged.Images, 1)
}

func TestPropertyService_Update_CannotChangeOwner(t *testing.T) {
	svc, _, repo := setupPropertyServiceTest(t)
	ctx := context.Background()

	property, err := svc.Create(ctx, 7, testInput("Keeps its owner"), nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, 7, property.ID, testInput("Still owned"), nil, nil)
	require.NoError(t, err)

	stored, err := repo.FindByID(property.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), stored.UserID)
}

func TestPropertyService_Update_NotFound(t *testing.T) {
	svc, _, _ := setupPropertyServiceTest(t)

	_, err := svc.Update(context.Background(), 1, 9999, testInput("Ghost"), nil, nil)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestPropertyService_Update_StorageDeleteFailureIsSwallowed(t *testing.T) {
	svc, media, _ := setupPropertyServiceTest(t)
	ctx := context.Background()

	property, err := svc.Create(ctx, 1, testInput("Resilient"), fileHeaders(2))
	require.NoError(t, err)

	media.deleteErr = fmt.Errorf("s3 down")
	updated, err := svc.Update(ctx, 1, property.ID, testInput("Resilient"), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, updated.Images)
	assert.Len(t, media.deleted, 2)
}

func TestPropertyService_Delete(t *testing.T) {
	svc, media, _ := setupPropertyServiceTest(t)
	ctx := context.Background()

	property, err := svc.Create(ctx, 1, testInput("Short lived"), fileHeaders(3))
	require.NoError(t, err)

	t.Run("Wrong owner", func(t *testing.T) {
		err := svc.Delete(ctx, 2, property.ID)
		assert.ErrorIs(t, err, ErrPropertyNotFound)
		assert.Empty(t, media.deleted)
	})

	t.Run("Owner deletes listing and images", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, 1, property.ID))
		assert.ElementsMatch(t, []string{"obj-1", "obj-2", "obj-3"}, media.deleted)

		_, err := svc.GetByID(property.ID)
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("Already deleted", func(t *testing.T) {
		err := svc.Delete(ctx, 1, property.ID)
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})
}

func TestPropertyService_Queries(t *testing.T) {
	svc, _, _ := setupPropertyServiceTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, testInput("First"), nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, testInput("Second"), nil)
	require.NoError(t, err)

	all, err := svc.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.GetByOwner(1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "First", mine[0].Title)

	none, err := svc.GetByOwner(99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSubtractURLs(t *testing.T) {
	tests := []struct {
		name  string
		old   []string
		final []string
		want  []string
	}{
		{
			name:  "Middle element removed",
			old:   []string{"a", "b", "c"},
			final: []string{"a", "c", "d"},
			want:  []string{"b"},
		},
		{
			name:  "Nothing removed",
			old:   []string{"a", "b"},
			final: []string{"a", "b"},
			want:  nil,
		},
		{
			name:  "Everything removed",
			old:   []string{"a", "b"},
			final: nil,
			want:  []string{"a", "b"},
		},
		{
			name: "Empty old",
			old:  nil,
			final: []string{
				"a",
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subtractURLs(tt.old, tt.final))
		})
	}
}
