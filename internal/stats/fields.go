package stats

import (
	"strconv"
	"time"

	"github.com/jengzang/securecheck/internal/models"
)

// fieldValue returns the display value of f in rec; ok is false when absent
func fieldValue(rec *models.StopRecord, f models.Field) (v string, ok bool) {
	switch f {
	case models.FieldID:
		return strconv.FormatInt(rec.ID, 10), true
	case models.FieldStopDatetime:
		if rec.StopTimestamp == nil {
			return "", false
		}
		return rec.StopTimestamp.Format(time.RFC3339), true
	case models.FieldCountryName:
		return deref(rec.CountryName)
	case models.FieldDriverGender:
		return deref(rec.DriverGender)
	case models.FieldDriverAge:
		if rec.DriverAge == nil {
			return "", false
		}
		return strconv.Itoa(*rec.DriverAge), true
	case models.FieldDriverRace:
		return deref(rec.DriverRace)
	case models.FieldViolation:
		return deref(rec.Violation)
	case models.FieldSearchConducted:
		return strconv.FormatBool(rec.SearchConducted), true
	case models.FieldSearchType:
		return deref(rec.SearchType)
	case models.FieldIsArrested:
		return strconv.FormatBool(rec.IsArrested), true
	case models.FieldStopDuration:
		return deref(rec.StopDuration)
	case models.FieldDrugsRelatedStop:
		if rec.DrugsRelatedStop == nil {
			return "", false
		}
		return strconv.FormatBool(*rec.DrugsRelatedStop), true
	case models.FieldVehicleNumber:
		return deref(rec.VehicleNumber)
	}
	return "", false
}

// flagValue returns a boolean field of rec; ok is false when absent
func flagValue(rec *models.StopRecord, f models.Field) (v bool, ok bool) {
	switch f {
	case models.FieldSearchConducted:
		return rec.SearchConducted, true
	case models.FieldIsArrested:
		return rec.IsArrested, true
	case models.FieldDrugsRelatedStop:
		if rec.DrugsRelatedStop == nil {
			return false, false
		}
		return *rec.DrugsRelatedStop, true
	}
	return false, false
}

// numericValue returns a numeric field of rec; ok is false when absent
func numericValue(rec *models.StopRecord, f models.Field) (v float64, ok bool) {
	switch f {
	case models.FieldID:
		return float64(rec.ID), true
	case models.FieldDriverAge:
		if rec.DriverAge == nil {
			return 0, false
		}
		return float64(*rec.DriverAge), true
	}
	return 0, false
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

func checkField(f models.Field) error {
	if !f.IsKnown() {
		return models.FieldError(f, "is not a traffic_logs column")
	}
	return nil
}

func checkFlag(f models.Field) error {
	if err := checkField(f); err != nil {
		return err
	}
	if !f.IsBool() {
		return models.FieldError(f, "is not a boolean column")
	}
	return nil
}

func checkNumeric(f models.Field) error {
	if err := checkField(f); err != nil {
		return err
	}
	if f != models.FieldDriverAge && f != models.FieldID {
		return models.FieldError(f, "is not a numeric column")
	}
	return nil
}
