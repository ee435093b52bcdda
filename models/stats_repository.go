package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// NoDataLabel is reported as the top reason when there are no complaints.
const NoDataLabel = "no data"

// DefaultGroupLimit is used when a grouping query gets a non-positive limit.
const DefaultGroupLimit = 10

// LabelCount is one row of a grouped aggregate.
type LabelCount struct {
	Label string `gorm:"column:label" json:"label"`
	Count int64  `gorm:"column:total" json:"count"`
}

// DashboardStats summarizes the complaints table.
type DashboardStats struct {
	TotalComplaints      int64  `json:"total_complaints"`
	NewComplaints        int64  `json:"new_complaints"`
	InProgressComplaints int64  `json:"in_progress_complaints"`
	ResolvedComplaints   int64  `json:"resolved_complaints"`
	TodayComplaints      int64  `json:"today_complaints"`
	TopReason            string `json:"top_reason"`
	TopReasonCount       int64  `json:"top_reason_count"`
}

// StatsRepository runs the read-only dashboard aggregates.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// DashboardStats computes the summary figures. Complaints dated on the
// calendar day of now count as today's.
func (r *StatsRepository) DashboardStats(ctx context.Context, now time.Time) (DashboardStats, error) {
	var stats DashboardStats
	db := r.db.WithContext(ctx)

	var byStatus []LabelCount
	if err := db.Model(&Complaint{}).
		Select("status AS label, COUNT(*) AS total").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return stats, err
	}
	for _, s := range byStatus {
		stats.TotalComplaints += s.Count
		switch ComplaintStatus(s.Label) {
		case StatusNew:
			stats.NewComplaints = s.Count
		case StatusInProgress:
			stats.InProgressComplaints = s.Count
		case StatusResolved:
			stats.ResolvedComplaints = s.Count
		}
	}

	// Dates are stored in UTC; sqlite compares them as text.
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)
	if err := db.Model(&Complaint{}).
		Where("complaint_date >= ? AND complaint_date < ?", start.UTC(), end.UTC()).
		Count(&stats.TodayComplaints).Error; err != nil {
		return stats, err
	}

	top, err := r.ComplaintsByReason(ctx, 1)
	if err != nil {
		return stats, err
	}
	if len(top) == 0 {
		stats.TopReason = NoDataLabel
		stats.TopReasonCount = 0
	} else {
		stats.TopReason = top[0].Label
		stats.TopReasonCount = top[0].Count
	}
	return stats, nil
}

// ComplaintsByReason counts complaints per reason name, largest first.
func (r *StatsRepository) ComplaintsByReason(ctx context.Context, limit int) ([]LabelCount, error) {
	return r.groupedBy(ctx, "return_reasons", "reason_id", limit)
}

// ComplaintsByProduct counts complaints per product name, largest first.
func (r *StatsRepository) ComplaintsByProduct(ctx context.Context, limit int) ([]LabelCount, error) {
	return r.groupedBy(ctx, "products", "product_id", limit)
}

func (r *StatsRepository) groupedBy(ctx context.Context, table, fk string, limit int) ([]LabelCount, error) {
	if limit <= 0 {
		limit = DefaultGroupLimit
	}
	out := []LabelCount{}
	err := r.db.WithContext(ctx).
		Table("complaints AS c").
		Select("j.name AS label, COUNT(c.id) AS total").
		Joins("JOIN " + table + " AS j ON c." + fk + " = j.id").
		Group("j.name").
		Order("total DESC").
		Order("label ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ComplaintsByMonth counts complaints per YYYY-MM, oldest month first.
func (r *StatsRepository) ComplaintsByMonth(ctx context.Context) ([]LabelCount, error) {
	month := monthExpr(r.db.Dialector.Name())
	out := []LabelCount{}
	err := r.db.WithContext(ctx).
		Model(&Complaint{}).
		Select(month + " AS label, COUNT(*) AS total").
		Group(month).
		Order("label ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func monthExpr(dialect string) string {
	switch dialect {
	case "sqlite":
		return "strftime('%Y-%m', complaint_date)"
	case "mysql":
		return "DATE_FORMAT(complaint_date, '%Y-%m')"
	default:
		return "to_char(complaint_date, 'YYYY-MM')"
	}
}
