package models

import (
	"time"

	"github.com/google/uuid"
)

// NumberPrefix starts every complaint number.
const NumberPrefix = "CMP-"

const (
	batchNumberLayout      = "20060102150405"
	submissionNumberLayout = "20060102-150405"
)

// BatchNumber returns CMP-<YYYYMMDDHHMMSS>-<8 hex chars>.
func BatchNumber(t time.Time) string {
	return NumberPrefix + t.Format(batchNumberLayout) + "-" + RandomSuffix()
}

// SubmissionNumber returns CMP-<YYYYMMDD>-<HHMMSS>. Two submissions within
// the same second produce the same value.
func SubmissionNumber(t time.Time) string {
	return NumberPrefix + t.Format(submissionNumberLayout)
}

// RandomSuffix returns 8 random hex characters.
func RandomSuffix() string {
	return uuid.NewString()[:8]
}
