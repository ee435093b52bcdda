package models_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/returns-complaints/models"
	"github.com/retailops/returns-complaints/models/modelstest"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 10, 19, 9, 30, 15, 0, time.UTC)

	t.Run("creates one new complaint", func(t *testing.T) {
		repo := models.NewComplaintsRepository(modelstest.OpenSeeded(t)).WithClock(fixedClock(at))

		c, err := repo.Submit(ctx, models.Submission{ProductID: 1, ReasonID: 2, CustomerName: "Ann", Description: "broken"})
		require.NoError(t, err)

		assert.Equal(t, models.StatusNew, c.Status)
		assert.Regexp(t, regexp.MustCompile(`CMP-\d{8}-\d{6}`), c.Number)
		assert.Equal(t, "CMP-20261019-093015", c.Number)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("same second gets a suffixed number", func(t *testing.T) {
		repo := models.NewComplaintsRepository(modelstest.OpenSeeded(t)).WithClock(fixedClock(at))

		first, err := repo.Submit(ctx, models.Submission{ProductID: 1, ReasonID: 1})
		require.NoError(t, err)
		second, err := repo.Submit(ctx, models.Submission{ProductID: 1, ReasonID: 1})
		require.NoError(t, err)

		assert.NotEqual(t, first.Number, second.Number)
		assert.Regexp(t, regexp.MustCompile(`^CMP-20261019-093015-[0-9a-f]{8}$`), second.Number)
	})

	t.Run("single attempt collides", func(t *testing.T) {
		repo := models.NewComplaintsRepository(modelstest.OpenSeeded(t)).
			WithClock(fixedClock(at)).
			WithNumberAttempts(1)

		_, err := repo.Submit(ctx, models.Submission{ProductID: 1, ReasonID: 1})
		require.NoError(t, err)
		_, err = repo.Submit(ctx, models.Submission{ProductID: 1, ReasonID: 1})
		assert.ErrorIs(t, err, models.ErrNumberExhausted)
	})

	t.Run("unknown product", func(t *testing.T) {
		repo := models.NewComplaintsRepository(modelstest.OpenSeeded(t))
		_, err := repo.Submit(ctx, models.Submission{ProductID: 42, ReasonID: 1})
		assert.ErrorIs(t, err, models.ErrProductNotFound)
	})

	t.Run("unknown reason", func(t *testing.T) {
		repo := models.NewComplaintsRepository(modelstest.OpenSeeded(t))
		_, err := repo.Submit(ctx, models.Submission{ProductID: 1, ReasonID: 42})
		assert.ErrorIs(t, err, models.ErrReasonNotFound)
	})
}

func TestCreateIntegrity(t *testing.T) {
	ctx := context.Background()
	repo := models.NewComplaintsRepository(modelstest.OpenSeeded(t))

	require.NoError(t, repo.Create(ctx, &models.Complaint{Number: "CMP-1", ProductID: 1, ReasonID: 1}))

	err := repo.Create(ctx, &models.Complaint{Number: "CMP-1", ProductID: 1, ReasonID: 1})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	err = repo.Create(ctx, &models.Complaint{Number: "CMP-2", ProductID: 77, ReasonID: 1})
	assert.ErrorIs(t, err, models.ErrForeignKey)
	assert.True(t, models.IsIntegrity(err))
}

func TestCreateDefaults(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := models.NewComplaintsRepository(modelstest.OpenSeeded(t)).WithClock(fixedClock(at))

	c := &models.Complaint{Number: "CMP-X", ProductID: 2, ReasonID: 3}
	require.NoError(t, repo.Create(ctx, c))

	assert.Equal(t, models.StatusNew, c.Status)
	assert.True(t, c.ComplaintDate.Equal(at))
	assert.NotZero(t, c.ID)

	exists, err := repo.NumberExists(ctx, "CMP-X")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.NumberExists(ctx, "CMP-Y")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRecent(t *testing.T) {
	ctx := context.Background()
	repo := models.NewComplaintsRepository(modelstest.OpenSeeded(t))
	base := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	for i, number := range []string{"CMP-A", "CMP-B", "CMP-C"} {
		require.NoError(t, repo.Create(ctx, &models.Complaint{
			Number:        number,
			ProductID:     uint(i + 1),
			ReasonID:      1,
			ComplaintDate: base.AddDate(0, 0, i),
		}))
	}

	got, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "CMP-C", got[0].Number)
	assert.Equal(t, "CMP-B", got[1].Number)
	assert.Equal(t, "SKU-1003", got[0].Product.SKU)
	assert.Equal(t, "DAMAGED", got[0].Reason.Code)
}
