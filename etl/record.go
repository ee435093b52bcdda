// Package etl bulk-loads complaints: it extracts tabular rows from a CSV file
// or a synthetic generator, normalizes them and inserts them row by row with
// per-row failure isolation.
package etl

import "time"

// Source columns understood by the pipeline.
const (
	ColProductSKU     = "product_sku"
	ColReturnReason   = "return_reason"
	ColCustomerName   = "customer_name"
	ColCustomerRegion = "customer_region"
	ColDescription    = "description"
	ColComplaintDate  = "complaint_date"
)

// Row is one extracted source row keyed by column name.
type Row map[string]string

// Record is a transformed row ready to be loaded.
type Record struct {
	Line           int
	ProductSKU     string
	ReasonCode     string
	CustomerName   string
	CustomerRegion string
	Description    string
	ComplaintDate  time.Time

	// Err is set when the row could not be transformed; the loader skips it.
	Err error
}

// Skip reasons reported in Result.Reasons.
const (
	ReasonMalformed       = "malformed_row"
	ReasonUnknownProduct  = "unknown_product"
	ReasonUnknownReason   = "unknown_reason"
	ReasonNumberExhausted = "number_exhausted"
	ReasonInsertFailed    = "insert_failed"
	ReasonRolledBack      = "rolled_back"
)

// Result summarizes one load. Inserted counts committed rows only.
type Result struct {
	Inserted int            `json:"inserted"`
	Skipped  int            `json:"skipped"`
	Reasons  map[string]int `json:"reasons"`
}

func newResult() Result {
	return Result{Reasons: map[string]int{}}
}

func (r *Result) skip(reason string, n int) {
	if n <= 0 {
		return
	}
	r.Skipped += n
	r.Reasons[reason] += n
}

// Merge adds o into r.
func (r *Result) Merge(o Result) {
	if r.Reasons == nil {
		r.Reasons = map[string]int{}
	}
	r.Inserted += o.Inserted
	r.Skipped += o.Skipped
	for k, v := range o.Reasons {
		r.Reasons[k] += v
	}
}
