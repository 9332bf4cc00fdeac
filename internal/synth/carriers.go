package synth

import (
	"context"
	"encoding/csv"
	"errors"
	"io"

	"github.com/logisticsnet/logisticsnet/internal/carrier"
	"github.com/logisticsnet/logisticsnet/internal/refdata"
)

// CarrierHeader is the column layout of a carrier top-choice dataset.
var CarrierHeader = []string{"origin", "destination", "priority", "fragility", "top_choice_company"}

// CarrierRow records the top choice for one route under one priority and fragility.
type CarrierRow struct {
	Origin      string            `json:"origin"`
	Destination string            `json:"destination"`
	Priority    carrier.Priority  `json:"priority"`
	Fragility   carrier.Fragility `json:"fragility"`
	TopChoice   string            `json:"topChoiceCompany"`
}

// Record returns the row as CSV fields in CarrierHeader order.
func (r CarrierRow) Record() []string {
	return []string{r.Origin, r.Destination, string(r.Priority), string(r.Fragility), r.TopChoice}
}

// Recommender ranks carriers for a query.
type Recommender interface {
	Recommend(ctx context.Context, q carrier.Query) (*carrier.Recommendation, error)
}

// CarrierExamples records the top choice of every route under each single
// priority and fragility level. Routes without profiles are skipped.
func CarrierExamples(ctx context.Context, rec Recommender, routes []refdata.RouteKey) ([]CarrierRow, error) {
	var rows []CarrierRow
	for _, route := range routes {
		for _, p := range carrier.Priorities {
			for _, f := range carrier.Fragilities {
				result, err := rec.Recommend(ctx, carrier.Query{
					Origin:      route.Origin,
					Destination: route.Destination,
					Priorities:  []carrier.Priority{p},
					Fragility:   f,
				})
				if errors.Is(err, carrier.ErrNoRouteData) {
					continue
				}
				if err != nil {
					return nil, err
				}
				rows = append(rows, CarrierRow{
					Origin:      route.Origin,
					Destination: route.Destination,
					Priority:    p,
					Fragility:   f,
					TopChoice:   result.TopChoice.Name,
				})
			}
		}
	}
	return rows, nil
}

// WriteCarrierCSV writes carrier rows with a header line.
func WriteCarrierCSV(w io.Writer, rows []CarrierRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CarrierHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
