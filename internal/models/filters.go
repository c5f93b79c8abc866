package models

// FilterSelection represents the sidebar filters of the dashboard.
// An empty slice places no restriction on that field.
type FilterSelection struct {
	Countries  []string `form:"country" json:"countries,omitempty"`
	Genders    []string `form:"gender" json:"genders,omitempty"`
	Violations []string `form:"violation" json:"violations,omitempty"`
}

// IsEmpty reports whether the selection restricts nothing
func (s FilterSelection) IsEmpty() bool {
	return len(s.Countries) == 0 && len(s.Genders) == 0 && len(s.Violations) == 0
}

// FilterOptions lists the choices offered for each filter field
type FilterOptions struct {
	Countries  []string `json:"countries"`
	Genders    []string `json:"genders"`
	Violations []string `json:"violations"`
}

// ValueCountsFilter represents query parameters for value counts
type ValueCountsFilter struct {
	Field string `form:"field" binding:"required"`
	Top   int    `form:"top"` // 0 = all
}

// GroupMeanFilter represents query parameters for group means
type GroupMeanFilter struct {
	Group string `form:"group" binding:"required"`
	Flag  string `form:"flag"` // defaults to is_arrested
}
