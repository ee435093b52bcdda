package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name      string
		err       error
		duplicate bool
		foreign   bool
	}{
		{name: "nil", err: nil},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, duplicate: true},
		{name: "gorm foreign key", err: gorm.ErrForeignKeyViolated, foreign: true},
		{name: "postgres unique violation", err: &pgconn.PgError{Code: "23505"}, duplicate: true},
		{name: "postgres foreign key violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), foreign: true},
		{name: "postgres other error", err: &pgconn.PgError{Code: "42P01"}},
		{name: "sqlite unique", err: errors.New("UNIQUE constraint failed: complaints.complaint_number"), duplicate: true},
		{name: "sqlite foreign key", err: errors.New("FOREIGN KEY constraint failed"), foreign: true},
		{name: "generic", err: errors.New("connection refused")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)

			if tc.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.err, "original error must stay in the chain")
			assert.Equal(t, tc.duplicate, errors.Is(got, ErrDuplicate))
			assert.Equal(t, tc.foreign, errors.Is(got, ErrForeignKey))
			assert.Equal(t, tc.duplicate || tc.foreign, IsIntegrity(got))
		})
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	once := classify(gorm.ErrDuplicatedKey)
	twice := classify(once)
	assert.Equal(t, once, twice)
}

func TestComplaintStatusValid(t *testing.T) {
	assert.True(t, StatusNew.Valid())
	assert.True(t, StatusInProgress.Valid())
	assert.True(t, StatusResolved.Valid())
	assert.False(t, ComplaintStatus("closed").Valid())
	assert.False(t, ComplaintStatus("").Valid())
}
