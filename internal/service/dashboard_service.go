package service

import (
	"context"
	"log"
	"time"

	"github.com/jengzang/securecheck/internal/cache"
	"github.com/jengzang/securecheck/internal/models"
	"github.com/jengzang/securecheck/internal/stats"
)

// Chart sizes used by the dashboard
const (
	TopViolationsLimit = 10
	AgeHistogramBins   = 20
)

// RecordLoader loads every stop record from the store
type RecordLoader interface {
	LoadAllRecords(ctx context.Context) ([]models.StopRecord, error)
}

// DashboardService serves records, filters and chart aggregates
type DashboardService struct {
	loader RecordLoader
	cache  *cache.RecordCache
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(loader RecordLoader, recordCache *cache.RecordCache) *DashboardService {
	return &DashboardService{
		loader: loader,
		cache:  recordCache,
	}
}

// GetRecords returns all records, served from the cache when fresh
func (s *DashboardService) GetRecords(ctx context.Context) ([]models.StopRecord, error) {
	return s.cache.Get(ctx, func(ctx context.Context) ([]models.StopRecord, error) {
		start := time.Now()
		records, err := s.loader.LoadAllRecords(ctx)
		if err != nil {
			return nil, err
		}
		log.Printf("Loaded %d stop records in %v", len(records), time.Since(start))
		return records, nil
	})
}

// GetFilteredRecords returns the records matching sel
func (s *DashboardService) GetFilteredRecords(ctx context.Context, sel models.FilterSelection) ([]models.StopRecord, error) {
	records, err := s.GetRecords(ctx)
	if err != nil {
		return nil, err
	}
	return stats.ApplyFilter(records, sel), nil
}

// GetFilterOptions returns the sorted choices of the three filter fields
func (s *DashboardService) GetFilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	records, err := s.GetRecords(ctx)
	if err != nil {
		return nil, err
	}
	opts := stats.Options(records)
	return &opts, nil
}

// GetInsights computes the chart data.
// Drug-related violations follow the filter; the other charts cover all records.
func (s *DashboardService) GetInsights(ctx context.Context, sel models.FilterSelection) (*models.Insights, error) {
	records, err := s.GetRecords(ctx)
	if err != nil {
		return nil, err
	}
	filtered := stats.ApplyFilter(records, sel)

	insights := &models.Insights{RecordCount: len(records)}

	if insights.ArrestRateByGender, err = stats.GroupMean(records, models.FieldDriverGender, models.FieldIsArrested); err != nil {
		return nil, err
	}
	if insights.StopDurations, err = stats.ValueCounts(records, models.FieldStopDuration, 0); err != nil {
		return nil, err
	}
	if insights.Violations, err = stats.ValueCounts(records, models.FieldViolation, 0); err != nil {
		return nil, err
	}
	insights.TopViolations = topOf(insights.Violations, TopViolationsLimit)
	if insights.GenderDistribution, err = stats.ValueCounts(records, models.FieldDriverGender, 0); err != nil {
		return nil, err
	}
	if insights.AgeHistogram, err = stats.Histogram(records, models.FieldDriverAge, AgeHistogramBins); err != nil {
		return nil, err
	}
	if insights.AgeSummary, err = stats.Summary(records, models.FieldDriverAge); err != nil {
		return nil, err
	}
	insights.DrugRelatedViolations = stats.DrugRelatedViolations(filtered, TopViolationsLimit)
	insights.ArrestsByHour = stats.HourOfDay(records)
	insights.GeneratedAt = time.Now().Format(time.RFC3339)
	if loaded := s.cache.LoadedAt(); !loaded.IsZero() {
		insights.RecordsLoadedAt = loaded.Format(time.RFC3339)
	}

	return insights, nil
}

// GetValueCounts counts the values of field over the filtered records
func (s *DashboardService) GetValueCounts(ctx context.Context, sel models.FilterSelection, field models.Field, top int) ([]models.ValueCount, error) {
	records, err := s.GetFilteredRecords(ctx, sel)
	if err != nil {
		return nil, err
	}
	return stats.ValueCounts(records, field, top)
}

// GetGroupMean averages flag per value of group over the filtered records
func (s *DashboardService) GetGroupMean(ctx context.Context, sel models.FilterSelection, group, flag models.Field) ([]models.GroupRate, error) {
	records, err := s.GetFilteredRecords(ctx, sel)
	if err != nil {
		return nil, err
	}
	return stats.GroupMean(records, group, flag)
}

// GetArrestsByHour counts arrests per hour over the filtered records
func (s *DashboardService) GetArrestsByHour(ctx context.Context, sel models.FilterSelection) ([]models.HourCount, error) {
	records, err := s.GetFilteredRecords(ctx, sel)
	if err != nil {
		return nil, err
	}
	return stats.HourOfDay(records), nil
}

// Refresh drops the cached records so the next read reloads them
func (s *DashboardService) Refresh() {
	s.cache.Invalidate()
	log.Printf("Record cache invalidated")
}

func topOf(counts []models.ValueCount, n int) []models.ValueCount {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}
