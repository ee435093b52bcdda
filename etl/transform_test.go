package etl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeReason(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "damaged", want: "DAMAGED"},
		{in: "defect", want: "DEFECTIVE"},
		{in: "wrong item", want: "WRONG_ITEM"},
		{in: "late", want: "LATE_DELIVERY"},
		{in: "changed mind", want: "CHANGED_MIND"},
		{in: "box was damaged in transit", want: "DAMAGED"},
		{in: "factory defect on screen", want: "DEFECTIVE"},
		{in: "customer changed mind", want: "CHANGED_MIND"},
		{in: "DAMAGED", want: "DAMAGED"},
		{in: "MISMATCH", want: "MISMATCH"},
		{in: "Damaged", want: "Damaged"},
		{in: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeReason(tc.in))
		})
	}
}

func TestTransform(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	rows := []Row{
		{
			ColProductSKU:     " SKU-1001 ",
			ColReturnReason:   "wrong item",
			ColCustomerName:   "Ann",
			ColCustomerRegion: "Kazan",
			ColDescription:    "sent the blue one",
			ColComplaintDate:  "2026-09-01 10:30",
		},
		{
			ColProductSKU:   "SKU-1002",
			ColReturnReason: "DEFECTIVE",
		},
		{
			ColProductSKU:    "SKU-1003",
			ColReturnReason:  "late",
			ColComplaintDate: "yesterday",
		},
	}

	got := Transform(rows, now)
	require.Len(t, got, 3)

	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, "SKU-1001", got[0].ProductSKU)
	assert.Equal(t, "WRONG_ITEM", got[0].ReasonCode)
	assert.Equal(t, "Ann", got[0].CustomerName)
	assert.Equal(t, "Kazan", got[0].CustomerRegion)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC), got[0].ComplaintDate)
	assert.NoError(t, got[0].Err)

	assert.Equal(t, DefaultCustomerName, got[1].CustomerName)
	assert.Empty(t, got[1].Description)
	assert.Empty(t, got[1].CustomerRegion)
	assert.Equal(t, now, got[1].ComplaintDate)
	assert.Equal(t, "DEFECTIVE", got[1].ReasonCode)

	assert.Equal(t, "LATE_DELIVERY", got[2].ReasonCode)
	assert.Error(t, got[2].Err)
}

func TestTransformNormalizesUnicode(t *testing.T) {
	rows := []Row{{ColCustomerName: "Rene\u0301", ColProductSKU: "SKU-1"}}

	got := Transform(rows, time.Now())
	assert.Equal(t, "Ren\u00e9", got[0].CustomerName)
}

func TestParseComplaintDate(t *testing.T) {
	for _, in := range []string{
		"2026-09-01T10:30:00Z",
		"2026-09-01T10:30:00.123456+03:00",
		"2026-09-01 10:30:00",
		"2026-09-01 10:30",
		"2026-09-01",
	} {
		_, err := ParseComplaintDate(in, time.UTC)
		assert.NoError(t, err, in)
	}

	_, err := ParseComplaintDate("01/09/2026", time.UTC)
	assert.Error(t, err)
}
