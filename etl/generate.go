package etl

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/retailops/returns-complaints/models"
)

// SampleWindowDays bounds how far back synthetic complaint dates go.
const SampleWindowDays = 90

var sampleRegions = []string{
	"Moscow",
	"Saint Petersburg",
	"Novosibirsk",
	"Yekaterinburg",
	"Kazan",
	"Rostov-on-Don",
}

var sampleDescriptions = []string{
	"Item arrived damaged",
	"Does not work",
	"Does not match the description",
	"Delivery was late",
	"Battery fault",
	"Part is missing",
	"Poor build quality",
}

// ReferenceLister provides the products and reasons to sample from.
type ReferenceLister interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetAllReasons(ctx context.Context) ([]models.ReturnReason, error)
}

// Generator produces plausible complaint rows referencing existing products
// and reasons.
type Generator struct {
	ref ReferenceLister
	rnd *rand.Rand
	now func() time.Time
}

func NewGenerator(ref ReferenceLister, rnd *rand.Rand, now func() time.Time) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{ref: ref, rnd: rnd, now: now}
}

// Generate returns n rows. It returns an empty table when there are no
// products or no reasons to reference.
func (g *Generator) Generate(ctx context.Context, n int) ([]Row, error) {
	products, err := g.ref.GetAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	reasons, err := g.ref.GetAllReasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reasons: %w", err)
	}
	if len(products) == 0 || len(reasons) == 0 || n <= 0 {
		return nil, nil
	}

	now := g.now()
	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		product := products[g.rnd.Intn(len(products))]
		reason := reasons[g.rnd.Intn(len(reasons))]
		date := now.AddDate(0, 0, -g.rnd.Intn(SampleWindowDays+1))

		rows = append(rows, Row{
			ColProductSKU:     product.SKU,
			ColReturnReason:   reason.Code,
			ColCustomerName:   fmt.Sprintf("Customer %d", i+1),
			ColCustomerRegion: sampleRegions[g.rnd.Intn(len(sampleRegions))],
			ColDescription:    sampleDescriptions[g.rnd.Intn(len(sampleDescriptions))],
			ColComplaintDate:  date.Format(time.RFC3339Nano),
		})
	}
	return rows, nil
}
