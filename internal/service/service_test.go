package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jengzang/securecheck/internal/cache"
	"github.com/jengzang/securecheck/internal/models"
	"github.com/jengzang/securecheck/internal/reports"
)

type fakeLoader struct {
	records []models.StopRecord
	err     error
	calls   int
}

func (f *fakeLoader) LoadAllRecords(ctx context.Context) ([]models.StopRecord, error) {
	f.calls++
	return f.records, f.err
}

type fakeRunner struct {
	got reports.QuerySpec
}

func (f *fakeRunner) RunReport(ctx context.Context, spec reports.QuerySpec) (*models.ReportResult, error) {
	f.got = spec
	return &models.ReportResult{Report: spec.Name, Columns: spec.Columns, Rows: [][]any{}}, nil
}

func ptr[T any](v T) *T { return &v }

func fixture() []models.StopRecord {
	hour := func(h int) *time.Time {
		t := time.Date(2022, 3, 4, h, 0, 0, 0, time.UTC)
		return &t
	}
	return []models.StopRecord{
		{ID: 1, CountryName: ptr("India"), DriverGender: ptr("Male"), Violation: ptr("Speeding"), IsArrested: true,
			StopTimestamp: hour(9), DriverAge: ptr(30), StopDuration: ptr("0-15 Min"), DrugsRelatedStop: ptr(true)},
		{ID: 2, CountryName: ptr("USA"), DriverGender: ptr("Female"), Violation: ptr("Seatbelt"),
			StopTimestamp: hour(14), DriverAge: ptr(22), StopDuration: ptr("16-30 Min"), DrugsRelatedStop: ptr(true)},
		{ID: 3, CountryName: ptr("India"), DriverGender: ptr("Female"), Violation: ptr("Speeding"), IsArrested: true,
			StopTimestamp: hour(22), DriverAge: ptr(45), StopDuration: ptr("0-15 Min"), DrugsRelatedStop: ptr(false)},
	}
}

func TestDashboardServiceCachesRecords(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{records: fixture()}
	svc := NewDashboardService(loader, cache.NewRecordCache(0))

	if _, err := svc.GetRecords(ctx); err != nil {
		t.Fatalf("get records: %v", err)
	}
	if _, err := svc.GetFilteredRecords(ctx, models.FilterSelection{Countries: []string{"India"}}); err != nil {
		t.Fatalf("get filtered: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("loader called %d times, want 1", loader.calls)
	}

	svc.Refresh()
	if _, err := svc.GetRecords(ctx); err != nil {
		t.Fatalf("get records: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("loader called %d times after refresh, want 2", loader.calls)
	}
}

func TestDashboardServicePropagatesErrors(t *testing.T) {
	boom := models.ConnectionError(errors.New("dial tcp: refused"), "failed to reach mysql store")
	svc := NewDashboardService(&fakeLoader{err: boom}, cache.NewRecordCache(0))

	if _, err := svc.GetInsights(context.Background(), models.FilterSelection{}); !errors.Is(err, models.ErrConnection) {
		t.Fatalf("err = %v, want ErrConnection", err)
	}
}

func TestDashboardServiceInsights(t *testing.T) {
	svc := NewDashboardService(&fakeLoader{records: fixture()}, cache.NewRecordCache(0))

	got, err := svc.GetInsights(context.Background(), models.FilterSelection{Countries: []string{"USA"}})
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if got.RecordCount != 3 {
		t.Fatalf("RecordCount = %d, want 3", got.RecordCount)
	}
	if len(got.ArrestRateByGender) != 2 || got.ArrestRateByGender[0].Group != "Female" || got.ArrestRateByGender[0].Rate != 0.5 {
		t.Fatalf("ArrestRateByGender = %v", got.ArrestRateByGender)
	}
	if len(got.TopViolations) != 2 || got.TopViolations[0].Value != "Speeding" || got.TopViolations[0].Count != 2 {
		t.Fatalf("TopViolations = %v", got.TopViolations)
	}
	// drug-related chart follows the filter: only the USA stop remains
	if len(got.DrugRelatedViolations) != 1 || got.DrugRelatedViolations[0].Value != "Seatbelt" {
		t.Fatalf("DrugRelatedViolations = %v", got.DrugRelatedViolations)
	}
	if len(got.ArrestsByHour) != 2 || got.ArrestsByHour[0].Hour != 9 || got.ArrestsByHour[1].Hour != 22 {
		t.Fatalf("ArrestsByHour = %v", got.ArrestsByHour)
	}
	if len(got.AgeHistogram) != AgeHistogramBins {
		t.Fatalf("AgeHistogram has %d bins, want %d", len(got.AgeHistogram), AgeHistogramBins)
	}
	if got.RecordsLoadedAt == "" {
		t.Fatalf("RecordsLoadedAt not set")
	}
	if got.AgeSummary == nil || got.AgeSummary.Median != 30 || got.AgeSummary.Count != 3 {
		t.Fatalf("AgeSummary = %+v", got.AgeSummary)
	}
}

func TestDashboardServiceUnknownField(t *testing.T) {
	svc := NewDashboardService(&fakeLoader{records: fixture()}, cache.NewRecordCache(0))

	_, err := svc.GetValueCounts(context.Background(), models.FilterSelection{}, models.Field("plate_colour"), 0)
	if !errors.Is(err, models.ErrField) {
		t.Fatalf("err = %v, want ErrField", err)
	}
}

func TestReportServiceRunReport(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewReportService(runner)

	name := "Top 5 Violations with Highest Arrest Rates"
	result, err := svc.RunReport(context.Background(), name)
	if err != nil {
		t.Fatalf("run report: %v", err)
	}
	if runner.got.ID != reports.TopArrestRateViolations || result.Report != name {
		t.Fatalf("dispatched %+v", runner.got)
	}

	if _, err := svc.RunReport(context.Background(), "Everything"); !errors.Is(err, models.ErrQuery) {
		t.Fatalf("err = %v, want ErrQuery", err)
	}

	if got := svc.ListReports(); len(got) != 6 || got[0].Name != "Yearly Breakdown of Stops and Arrests by Country" {
		t.Fatalf("ListReports = %v", got)
	}
}

func validRequest() models.PredictionRequest {
	return models.PredictionRequest{
		StopDate:     "2024-05-01",
		StopTime:     "07:30",
		CountryName:  "India",
		DriverGender: "Male",
		DriverAge:    26,
		StopDuration: "0-15 Min",
	}
}

func TestPredictHeuristicBoundaries(t *testing.T) {
	svc := NewPredictionService()

	cases := []struct {
		age       int
		clock     string
		outcome   string
		violation string
	}{
		{25, "06:59", models.OutcomeWarning, "Equipment"},
		{26, "07:00", models.OutcomeCitation, "Speeding"},
		{40, "18:59", models.OutcomeCitation, "Speeding"},
		{16, "19:00", models.OutcomeWarning, "Equipment"},
		{100, "23:10:05", models.OutcomeCitation, "Equipment"},
	}
	for _, tc := range cases {
		req := validRequest()
		req.DriverAge = tc.age
		req.StopTime = tc.clock

		got, err := svc.Predict(req)
		if err != nil {
			t.Fatalf("predict %+v: %v", tc, err)
		}
		if got.Outcome != tc.outcome || got.Violation != tc.violation {
			t.Fatalf("age %d at %s: got %s/%s, want %s/%s",
				tc.age, tc.clock, got.Outcome, got.Violation, tc.outcome, tc.violation)
		}
	}
}

func TestPredictSummary(t *testing.T) {
	req := validRequest()
	req.StopTime = "19:45"
	req.DriverGender = "Female"
	req.SearchConducted = true
	req.DrugRelated = true

	got, err := NewPredictionService().Predict(req)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got.StopTime != "07:45 PM" {
		t.Fatalf("StopTime = %q", got.StopTime)
	}
	for _, part := range []string{"26-year-old female driver", "for Equipment", "A search was conducted", "was drug-related", "in India"} {
		if !strings.Contains(got.Summary, part) {
			t.Fatalf("summary %q lacks %q", got.Summary, part)
		}
	}
}

func TestPredictRejectsInvalidInput(t *testing.T) {
	svc := NewPredictionService()

	mutations := []func(*models.PredictionRequest){
		func(r *models.PredictionRequest) { r.DriverAge = 15 },
		func(r *models.PredictionRequest) { r.DriverAge = 101 },
		func(r *models.PredictionRequest) { r.DriverGender = "male" },
		func(r *models.PredictionRequest) { r.StopDuration = "45 Min" },
		func(r *models.PredictionRequest) { r.StopTime = "noon" },
		func(r *models.PredictionRequest) { r.StopDate = "01/05/2024" },
	}
	for i, mutate := range mutations {
		req := validRequest()
		mutate(&req)
		if _, err := svc.Predict(req); !errors.Is(err, ErrInvalidPrediction) {
			t.Fatalf("case %d: err = %v, want ErrInvalidPrediction", i, err)
		}
	}
}
