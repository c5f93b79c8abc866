package models

// ValueCount is the number of records carrying a value
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// GroupRate is the mean of a 0/1 flag within a group
type GroupRate struct {
	Group string  `json:"group"`
	Rate  float64 `json:"rate"`
}

// HourCount is the number of arrests in one hour of the day
type HourCount struct {
	Hour  int `json:"hour"` // 0-23
	Count int `json:"count"`
}

// HistogramBin is one equal-width bucket; Upper is exclusive except for the last bin
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Insights represents the chart data of the dashboard
type Insights struct {
	RecordCount           int             `json:"recordCount"`
	ArrestRateByGender    []GroupRate     `json:"arrestRateByGender"`
	StopDurations         []ValueCount    `json:"stopDurations"`
	TopViolations         []ValueCount    `json:"topViolations"`
	Violations            []ValueCount    `json:"violations"`
	GenderDistribution    []ValueCount    `json:"genderDistribution"`
	DrugRelatedViolations []ValueCount    `json:"drugRelatedViolations,omitempty"`
	AgeHistogram          []HistogramBin  `json:"ageHistogram"`
	AgeSummary            *NumericSummary `json:"ageSummary,omitempty"`
	ArrestsByHour         []HourCount     `json:"arrestsByHour"`
	GeneratedAt           string          `json:"generatedAt"`
	RecordsLoadedAt       string          `json:"recordsLoadedAt"` // when the cached records were read
}

// NumericSummary is the five-number summary of a numeric column
type NumericSummary struct {
	Field  string  `json:"field"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}
