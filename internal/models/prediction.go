package models

// PredictionRequest represents the "add new police log" form.
// Nothing submitted here is written to traffic_logs.
type PredictionRequest struct {
	StopDate        string `json:"stopDate" binding:"required"` // YYYY-MM-DD
	StopTime        string `json:"stopTime" binding:"required"` // HH:MM or HH:MM:SS
	CountryName     string `json:"countryName"`
	DriverGender    string `json:"driverGender" binding:"required"`
	DriverAge       int    `json:"driverAge" binding:"required"`
	DriverRace      string `json:"driverRace"`
	SearchConducted bool   `json:"searchConducted"`
	SearchType      string `json:"searchType"`
	DrugRelated     bool   `json:"drugRelated"` // "was a drug involved?" on the form
	StopDuration    string `json:"stopDuration" binding:"required"`
	VehicleNumber   string `json:"vehicleNumber"`
}

// Prediction outcomes
const (
	OutcomeCitation = "Citation"
	OutcomeWarning  = "Warning"
)

// Prediction is the heuristic result for a submitted stop
type Prediction struct {
	Outcome   string `json:"outcome"`
	Violation string `json:"violation"`
	StopTime  string `json:"stopTime"` // 12-hour clock, e.g. 07:30 PM
	Summary   string `json:"summary"`
}
