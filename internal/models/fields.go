package models

// Field names a traffic_logs column
type Field string

// Column names of traffic_logs
const (
	FieldID               Field = "id"
	FieldStopDatetime     Field = "stop_datetime"
	FieldCountryName      Field = "country_name"
	FieldDriverGender     Field = "driver_gender"
	FieldDriverAge        Field = "driver_age"
	FieldDriverRace       Field = "driver_race"
	FieldViolation        Field = "violation"
	FieldSearchConducted  Field = "search_conducted"
	FieldSearchType       Field = "search_type"
	FieldIsArrested       Field = "is_arrested"
	FieldStopDuration     Field = "stop_duration"
	FieldDrugsRelatedStop Field = "drugs_related_stop"
	FieldVehicleNumber    Field = "vehicle_number"
)

// RequiredFields must be present in traffic_logs
var RequiredFields = []Field{
	FieldID,
	FieldStopDatetime,
	FieldCountryName,
	FieldDriverGender,
	FieldDriverAge,
	FieldDriverRace,
	FieldViolation,
	FieldSearchConducted,
	FieldSearchType,
	FieldIsArrested,
	FieldStopDuration,
}

// OptionalFields are mapped when present
var OptionalFields = []Field{
	FieldDrugsRelatedStop,
	FieldVehicleNumber,
}

// IsKnown reports whether f is a traffic_logs column
func (f Field) IsKnown() bool {
	for _, k := range RequiredFields {
		if k == f {
			return true
		}
	}
	for _, k := range OptionalFields {
		if k == f {
			return true
		}
	}
	return false
}

// IsBool reports whether f holds a boolean flag
func (f Field) IsBool() bool {
	switch f {
	case FieldSearchConducted, FieldIsArrested, FieldDrugsRelatedStop:
		return true
	}
	return false
}
