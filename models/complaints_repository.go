package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultNumberAttempts bounds complaint number generation.
const DefaultNumberAttempts = 5

type ComplaintsRepository struct {
	db       *gorm.DB
	now      func() time.Time
	attempts int
}

// Submission carries the fields accepted by the add-complaint form.
type Submission struct {
	ProductID    uint
	ReasonID     uint
	CustomerName string
	Description  string
}

func NewComplaintsRepository(db *gorm.DB) *ComplaintsRepository {
	return &ComplaintsRepository{
		db:       db,
		now:      time.Now,
		attempts: DefaultNumberAttempts,
	}
}

// WithClock replaces the time source used for numbers and default dates.
func (r *ComplaintsRepository) WithClock(now func() time.Time) *ComplaintsRepository {
	r.now = now
	return r
}

// WithNumberAttempts sets how many complaint numbers Submit tries.
func (r *ComplaintsRepository) WithNumberAttempts(n int) *ComplaintsRepository {
	if n > 0 {
		r.attempts = n
	}
	return r
}

// Recent returns the latest complaints with product and reason loaded.
func (r *ComplaintsRepository) Recent(ctx context.Context, limit int) ([]Complaint, error) {
	var complaints []Complaint
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Reason").
		Order("complaint_date DESC").
		Order("id DESC").
		Limit(limit).
		Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *ComplaintsRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Complaint{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// NumberExists reports whether a complaint already uses number.
func (r *ComplaintsRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&Complaint{}).
		Where("complaint_number = ?", number).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts c without touching its associations. Status and
// ComplaintDate get their defaults when unset; the date is stored in UTC.
func (r *ComplaintsRepository) Create(ctx context.Context, c *Complaint) error {
	if c.Status == "" {
		c.Status = StatusNew
	}
	if c.ComplaintDate.IsZero() {
		c.ComplaintDate = r.now()
	}
	c.ComplaintDate = c.ComplaintDate.UTC()
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return classify(err)
	}
	return nil
}

// Submit stores a complaint entered through the form. The number is
// CMP-<YYYYMMDD>-<HHMMSS>; when that is already taken a random suffix is
// appended, up to the configured number of attempts.
func (r *ComplaintsRepository) Submit(ctx context.Context, s Submission) (*Complaint, error) {
	if _, err := NewProductsRepository(r.db).GetByID(ctx, s.ProductID); err != nil {
		return nil, err
	}
	if _, err := NewReasonsRepository(r.db).GetByID(ctx, s.ReasonID); err != nil {
		return nil, err
	}

	now := r.now()
	base := SubmissionNumber(now)
	for attempt := 0; attempt < r.attempts; attempt++ {
		number := base
		if attempt > 0 {
			number = base + "-" + RandomSuffix()
		}

		taken, err := r.NumberExists(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("check complaint number: %w", err)
		}
		if taken {
			continue
		}

		c := &Complaint{
			Number:        number,
			ProductID:     s.ProductID,
			ReasonID:      s.ReasonID,
			CustomerName:  s.CustomerName,
			Description:   s.Description,
			Status:        StatusNew,
			ComplaintDate: now,
		}
		err = r.Create(ctx, c)
		if errors.Is(err, ErrDuplicate) {
			// lost a race for the same number
			continue
		}
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, ErrNumberExhausted
}
