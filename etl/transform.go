package etl

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DefaultCustomerName replaces a missing customer name.
const DefaultCustomerName = "Unknown"

// reasonPhrase maps a free-text phrase onto a canonical reason code.
type reasonPhrase struct {
	phrase string
	code   string
}

// reasonPhrases is matched case-sensitively: exact first, then substring in
// this order.
var reasonPhrases = []reasonPhrase{
	{phrase: "damaged", code: "DAMAGED"},
	{phrase: "defect", code: "DEFECTIVE"},
	{phrase: "wrong item", code: "WRONG_ITEM"},
	{phrase: "late", code: "LATE_DELIVERY"},
	{phrase: "changed mind", code: "CHANGED_MIND"},
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeReason returns the canonical code for a free-text reason. Values
// that match no phrase are returned unchanged.
func NormalizeReason(s string) string {
	for _, p := range reasonPhrases {
		if s == p.phrase {
			return p.code
		}
	}
	for _, p := range reasonPhrases {
		if strings.Contains(s, p.phrase) {
			return p.code
		}
	}
	return s
}

// ParseComplaintDate accepts RFC 3339 and the common SQL layouts. Values
// without a zone are read in loc.
func ParseComplaintDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized complaint date %q", s)
}

// Transform fills defaults, maps reason phrases to codes and parses dates.
// Rows are numbered from 1 in source order.
func Transform(rows []Row, now time.Time) []Record {
	out := make([]Record, 0, len(rows))
	for i, row := range rows {
		rec := Record{
			Line:           i + 1,
			ProductSKU:     clean(row[ColProductSKU]),
			ReasonCode:     NormalizeReason(clean(row[ColReturnReason])),
			CustomerName:   clean(row[ColCustomerName]),
			CustomerRegion: clean(row[ColCustomerRegion]),
			Description:    clean(row[ColDescription]),
			ComplaintDate:  now,
		}
		if rec.CustomerName == "" {
			rec.CustomerName = DefaultCustomerName
		}
		if raw := clean(row[ColComplaintDate]); raw != "" {
			t, err := ParseComplaintDate(raw, now.Location())
			if err != nil {
				rec.Err = err
			} else {
				rec.ComplaintDate = t
			}
		}
		out = append(out, rec)
	}
	return out
}

func clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
