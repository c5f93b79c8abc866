package models

import "time"

// Stop duration buckets as recorded by check posts
const (
	StopDurationShort  = "0-15 Min"
	StopDurationMedium = "16-30 Min"
	StopDurationLong   = "30+ Min"
)

// Driver gender values
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Driver age bounds accepted at a check post
const (
	MinDriverAge = 16
	MaxDriverAge = 100
)

// StopRecord represents one traffic stop row of traffic_logs.
// Absent columns are nil pointers.
type StopRecord struct {
	ID              int64      `json:"id" db:"id"`
	StopTimestamp   *time.Time `json:"stopDatetime,omitempty" db:"stop_datetime"`
	CountryName     *string    `json:"countryName,omitempty" db:"country_name"`
	DriverGender    *string    `json:"driverGender,omitempty" db:"driver_gender"` // Male, Female, Other
	DriverAge       *int       `json:"driverAge,omitempty" db:"driver_age"`       // 16-100
	DriverRace      *string    `json:"driverRace,omitempty" db:"driver_race"`
	Violation       *string    `json:"violation,omitempty" db:"violation"`
	SearchConducted bool       `json:"searchConducted" db:"search_conducted"`
	SearchType      *string    `json:"searchType,omitempty" db:"search_type"` // only meaningful when SearchConducted
	IsArrested      bool       `json:"isArrested" db:"is_arrested"`
	StopDuration    *string    `json:"stopDuration,omitempty" db:"stop_duration"` // 0-15 Min, 16-30 Min, 30+ Min

	// Optional columns; not every deployment of traffic_logs carries them.
	// DrugsRelatedStop is kept apart from IsArrested even though older
	// dashboards used the arrest flag as a drug proxy.
	DrugsRelatedStop *bool   `json:"drugsRelatedStop,omitempty" db:"drugs_related_stop"`
	VehicleNumber    *string `json:"vehicleNumber,omitempty" db:"vehicle_number"`
}

// StopRecordsResponse wraps a record listing
type StopRecordsResponse struct {
	Data  []StopRecord `json:"data"`
	Total int          `json:"total"`
}
