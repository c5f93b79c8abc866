package service

import (
	"context"
	"log"
	"time"

	"github.com/jengzang/securecheck/internal/models"
	"github.com/jengzang/securecheck/internal/reports"
)

// ReportRunner executes a catalog report
type ReportRunner interface {
	RunReport(ctx context.Context, spec reports.QuerySpec) (*models.ReportResult, error)
}

// ReportService handles the canned report catalog
type ReportService struct {
	runner ReportRunner
}

// NewReportService creates a new report service
func NewReportService(runner ReportRunner) *ReportService {
	return &ReportService{runner: runner}
}

// ListReports returns the catalog in presentation order
func (s *ReportService) ListReports() []models.ReportInfo {
	catalog := reports.Catalog()
	infos := make([]models.ReportInfo, len(catalog))
	for i, spec := range catalog {
		infos[i] = spec.Info()
	}
	return infos
}

// RunReport resolves name in the catalog and runs it
func (s *ReportService) RunReport(ctx context.Context, name string) (*models.ReportResult, error) {
	spec, err := reports.Lookup(name)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.runner.RunReport(ctx, spec)
	if err != nil {
		return nil, err
	}

	log.Printf("Report %q returned %d rows in %v", spec.Name, result.Count, time.Since(start))
	return result, nil
}
