package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/jengzang/securecheck/internal/models"
)

// ErrInvalidPrediction marks a form submission that cannot be evaluated
var ErrInvalidPrediction = errors.New("invalid prediction request")

// Heuristic thresholds; there is no trained model behind them
const (
	citationMinAge     = 25 // older drivers get a citation
	speedingFromHour   = 7  // daytime stops are read as speeding
	speedingBeforeHour = 19
)

// PredictionService evaluates the "add new police log" form
type PredictionService struct{}

// NewPredictionService creates a new prediction service
func NewPredictionService() *PredictionService {
	return &PredictionService{}
}

// Predict returns the heuristic outcome and violation for req.
// Nothing is stored.
func (s *PredictionService) Predict(req models.PredictionRequest) (*models.Prediction, error) {
	if err := validatePrediction(req); err != nil {
		return nil, err
	}

	stopTime, err := parseClock(req.StopTime)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPrediction, "stop time %q", req.StopTime)
	}
	if _, err := time.Parse("2006-01-02", req.StopDate); err != nil {
		return nil, errors.Wrapf(ErrInvalidPrediction, "stop date %q", req.StopDate)
	}

	outcome := models.OutcomeWarning
	if req.DriverAge > citationMinAge {
		outcome = models.OutcomeCitation
	}

	violation := "Equipment"
	if h := stopTime.Hour(); h >= speedingFromHour && h < speedingBeforeHour {
		violation = "Speeding"
	}

	clock := stopTime.Format("03:04 PM")

	search := "No search was conducted"
	if req.SearchConducted {
		search = "A search was conducted"
	}
	drug := "not drug-related"
	if req.DrugRelated {
		drug = "drug-related"
	}

	summary := fmt.Sprintf(
		"A %d-year-old %s driver was stopped for %s at %s in %s. %s, and the driver received a %s. The stop lasted %s and was %s.",
		req.DriverAge, strings.ToLower(req.DriverGender), violation, clock, req.CountryName,
		search, outcome, req.StopDuration, drug,
	)

	return &models.Prediction{
		Outcome:   outcome,
		Violation: violation,
		StopTime:  clock,
		Summary:   summary,
	}, nil
}

func validatePrediction(req models.PredictionRequest) error {
	if req.DriverAge < models.MinDriverAge || req.DriverAge > models.MaxDriverAge {
		return errors.Wrapf(ErrInvalidPrediction, "driver age %d outside %d-%d",
			req.DriverAge, models.MinDriverAge, models.MaxDriverAge)
	}

	switch req.DriverGender {
	case models.GenderMale, models.GenderFemale, models.GenderOther:
	default:
		return errors.Wrapf(ErrInvalidPrediction, "driver gender %q", req.DriverGender)
	}

	switch req.StopDuration {
	case models.StopDurationShort, models.StopDurationMedium, models.StopDurationLong:
	default:
		return errors.Wrapf(ErrInvalidPrediction, "stop duration %q", req.StopDuration)
	}
	return nil
}

func parseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04", "03:04 PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognised time %q", s)
}
