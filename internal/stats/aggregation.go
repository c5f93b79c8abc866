package stats

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/jengzang/securecheck/internal/models"
)

// GroupMean calculates the mean of flag (coded 0/1) per distinct value of group.
// Records with an absent group or flag value are skipped; groups are sorted by name.
func GroupMean(records []models.StopRecord, group, flag models.Field) ([]models.GroupRate, error) {
	if err := checkField(group); err != nil {
		return nil, err
	}
	if err := checkFlag(flag); err != nil {
		return nil, err
	}

	values := make(map[string][]float64)
	for i := range records {
		g, ok := fieldValue(&records[i], group)
		if !ok {
			continue
		}
		b, ok := flagValue(&records[i], flag)
		if !ok {
			continue
		}
		var x float64
		if b {
			x = 1
		}
		values[g] = append(values[g], x)
	}

	rates := make([]models.GroupRate, 0, len(values))
	for g, xs := range values {
		rates = append(rates, models.GroupRate{Group: g, Rate: Mean(xs)})
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].Group < rates[j].Group })
	return rates, nil
}

// ValueCounts counts records per distinct non-absent value of field, highest
// count first. Ties keep first-encountered order. topN <= 0 returns all.
func ValueCounts(records []models.StopRecord, field models.Field, topN int) ([]models.ValueCount, error) {
	if err := checkField(field); err != nil {
		return nil, err
	}

	index := make(map[string]int)
	counts := make([]models.ValueCount, 0)
	for i := range records {
		v, ok := fieldValue(&records[i], field)
		if !ok {
			continue
		}
		if j, seen := index[v]; seen {
			counts[j].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, models.ValueCount{Value: v, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })

	if topN > 0 && len(counts) > topN {
		counts = counts[:topN]
	}
	return counts, nil
}

// HourOfDay counts arrests per hour of the stop timestamp.
// Hours without arrests are omitted; the result is sorted by hour.
func HourOfDay(records []models.StopRecord) []models.HourCount {
	var buckets [24]int
	for i := range records {
		rec := &records[i]
		if !rec.IsArrested || rec.StopTimestamp == nil {
			continue
		}
		buckets[rec.StopTimestamp.Hour()]++
	}

	hours := make([]models.HourCount, 0)
	for h, n := range buckets {
		if n > 0 {
			hours = append(hours, models.HourCount{Hour: h, Count: n})
		}
	}
	return hours
}

// Histogram splits the non-absent values of a numeric field into bins of
// equal width between the observed min and max.
func Histogram(records []models.StopRecord, field models.Field, bins int) ([]models.HistogramBin, error) {
	if err := checkNumeric(field); err != nil {
		return nil, err
	}
	if bins < 1 {
		return nil, errors.Errorf("histogram needs at least one bin, got %d", bins)
	}

	var values []float64
	for i := range records {
		if v, ok := numericValue(&records[i], field); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return []models.HistogramBin{}, nil
	}

	lo, hi := Min(values), Max(values)
	if lo == hi {
		return []models.HistogramBin{{Lower: lo, Upper: hi, Count: len(values)}}, nil
	}

	width := (hi - lo) / float64(bins)
	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range values {
		i := int(math.Floor((v - lo) / width))
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out, nil
}

// DrugRelatedViolations counts violations among drug-related stops
func DrugRelatedViolations(records []models.StopRecord, topN int) []models.ValueCount {
	drug := make([]models.StopRecord, 0)
	for i := range records {
		if d := records[i].DrugsRelatedStop; d != nil && *d {
			drug = append(drug, records[i])
		}
	}
	counts, _ := ValueCounts(drug, models.FieldViolation, topN)
	return counts
}

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Min returns the minimum value
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
