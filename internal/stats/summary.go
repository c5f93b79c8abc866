package stats

import (
	"math"
	"sort"

	"github.com/jengzang/securecheck/internal/models"
)

// Summary returns the five-number summary and mean of a numeric field.
// Absent values are skipped; nil when no value is present.
func Summary(records []models.StopRecord, field models.Field) (*models.NumericSummary, error) {
	if err := checkNumeric(field); err != nil {
		return nil, err
	}

	var values []float64
	for i := range records {
		if v, ok := numericValue(&records[i], field); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, nil
	}

	sort.Float64s(values)
	return &models.NumericSummary{
		Field:  string(field),
		Count:  len(values),
		Min:    values[0],
		Q1:     quantile(values, 0.25),
		Median: quantile(values, 0.5),
		Q3:     quantile(values, 0.75),
		Max:    values[len(values)-1],
		Mean:   math.Round(Mean(values)*100) / 100,
	}, nil
}

// quantile interpolates linearly between closest ranks of sorted values
func quantile(sorted []float64, q float64) float64 {
	index := q * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
