package etl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/retailops/returns-complaints/models"
)

// DefaultBatchSize is the number of inserted rows between commits.
const DefaultBatchSize = 10

// Loader inserts transformed records one by one. Every BatchSize inserts are
// committed; a failing insert rolls back the rows pending since the last
// commit and loading continues with the next record.
type Loader struct {
	db        *gorm.DB
	log       *zap.Logger
	batchSize int
	attempts  int
	now       func() time.Time
}

type LoaderOption func(*Loader)

func WithBatchSize(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.batchSize = n
		}
	}
}

func WithNumberAttempts(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.attempts = n
		}
	}
}

func WithClock(now func() time.Time) LoaderOption {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}

func NewLoader(db *gorm.DB, log *zap.Logger, opts ...LoaderOption) *Loader {
	l := &Loader{
		db:        db,
		log:       log,
		batchSize: DefaultBatchSize,
		attempts:  models.DefaultNumberAttempts,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// batch is one open transaction and the repositories bound to it.
type batch struct {
	tx         *gorm.DB
	products   *models.ProductsRepository
	reasons    *models.ReasonsRepository
	complaints *models.ComplaintsRepository
	pending    int
}

func (l *Loader) begin(ctx context.Context) (*batch, error) {
	tx := l.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin batch: %w", tx.Error)
	}
	return &batch{
		tx:         tx,
		products:   models.NewProductsRepository(tx),
		reasons:    models.NewReasonsRepository(tx),
		complaints: models.NewComplaintsRepository(tx).WithClock(l.now),
	}, nil
}

// Load inserts records and reports what happened to each of them. An error
// is returned only when the store itself fails (begin or commit); the
// returned Result still reflects the rows committed so far.
func (l *Loader) Load(ctx context.Context, records []Record) (Result, error) {
	return l.load(ctx, records, NewNumberIssuer(l.attempts, l.now), nil)
}

// NumberCheck reports whether a complaint number is already stored.
type NumberCheck func(ctx context.Context, number string) (bool, error)

// load is Load with an explicit issuer. A nil exists checks the numbers
// against the open batch.
func (l *Loader) load(ctx context.Context, records []Record, numbers *NumberIssuer, exists NumberCheck) (Result, error) {
	res := newResult()
	if len(records) == 0 {
		return res, nil
	}

	b, err := l.begin(ctx)
	if err != nil {
		return res, err
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			b.tx.Rollback()
			res.skip(ReasonRolledBack, b.pending)
			return res, err
		}

		reason, err := l.loadOne(ctx, b, numbers, exists, rec)
		switch {
		case err == nil && reason == "":
			b.pending++
		case err == nil:
			l.log.Warn("skipping row",
				zap.Int("line", rec.Line),
				zap.String("reason", reason),
				zap.String("product_sku", rec.ProductSKU),
				zap.String("return_reason", rec.ReasonCode),
			)
			res.skip(reason, 1)
			continue
		default:
			l.log.Warn("row failed, discarding uncommitted rows",
				zap.Int("line", rec.Line),
				zap.Int("discarded", b.pending),
				zap.Error(err),
			)
			res.skip(ReasonInsertFailed, 1)
			res.skip(ReasonRolledBack, b.pending)
			b.tx.Rollback()
			if b, err = l.begin(ctx); err != nil {
				return res, err
			}
			continue
		}

		if b.pending >= l.batchSize {
			if err := l.commit(b, &res); err != nil {
				return res, err
			}
			if b, err = l.begin(ctx); err != nil {
				return res, err
			}
		}
	}

	if err := l.commit(b, &res); err != nil {
		return res, err
	}

	l.log.Info("load finished",
		zap.Int("inserted", res.Inserted),
		zap.Int("skipped", res.Skipped),
		zap.Any("reasons", res.Reasons),
	)
	return res, nil
}

func (l *Loader) commit(b *batch, res *Result) error {
	if err := b.tx.Commit().Error; err != nil {
		res.skip(ReasonRolledBack, b.pending)
		return fmt.Errorf("commit batch: %w", err)
	}
	res.Inserted += b.pending
	b.pending = 0
	return nil
}

// loadOne inserts a single record inside b. A non-empty skip reason means the
// record was rejected without touching the batch; an error means the batch
// must be rolled back.
func (l *Loader) loadOne(ctx context.Context, b *batch, numbers *NumberIssuer, exists NumberCheck, rec Record) (string, error) {
	if rec.Err != nil {
		return ReasonMalformed, nil
	}

	if exists == nil {
		exists = b.complaints.NumberExists
	}
	number, err := numbers.Issue(ctx, exists)
	if errors.Is(err, models.ErrNumberExhausted) {
		return ReasonNumberExhausted, nil
	}
	if err != nil {
		return "", err
	}

	product, err := b.products.GetBySKU(ctx, rec.ProductSKU)
	if errors.Is(err, models.ErrProductNotFound) {
		return ReasonUnknownProduct, nil
	}
	if err != nil {
		return "", err
	}

	reason, err := b.reasons.GetByCode(ctx, rec.ReasonCode)
	if errors.Is(err, models.ErrReasonNotFound) {
		return ReasonUnknownReason, nil
	}
	if err != nil {
		return "", err
	}

	return "", b.complaints.Create(ctx, &models.Complaint{
		Number:         number,
		ProductID:      product.ID,
		ReasonID:       reason.ID,
		CustomerName:   rec.CustomerName,
		CustomerRegion: rec.CustomerRegion,
		Description:    rec.Description,
		Status:         models.StatusNew,
		ComplaintDate:  rec.ComplaintDate,
	})
}
