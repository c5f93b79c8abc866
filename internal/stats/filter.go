package stats

import (
	"sort"

	"github.com/jengzang/securecheck/internal/models"
)

// ApplyFilter returns the records matching sel, in input order.
// Fields are AND-combined, values within a field OR-combined; an empty
// field places no restriction and an absent record value never matches a
// non-empty field. The result never shares a backing array with the input.
func ApplyFilter(records []models.StopRecord, sel models.FilterSelection) []models.StopRecord {
	if sel.IsEmpty() {
		out := make([]models.StopRecord, len(records))
		copy(out, records)
		return out
	}

	type constraint struct {
		field   models.Field
		allowed map[string]bool
	}
	var constraints []constraint
	add := func(f models.Field, values []string) {
		if len(values) == 0 {
			return
		}
		set := make(map[string]bool, len(values))
		for _, v := range values {
			set[v] = true
		}
		constraints = append(constraints, constraint{field: f, allowed: set})
	}
	add(models.FieldCountryName, sel.Countries)
	add(models.FieldDriverGender, sel.Genders)
	add(models.FieldViolation, sel.Violations)

	out := make([]models.StopRecord, 0, len(records))
	for i := range records {
		pass := true
		for _, c := range constraints {
			v, ok := fieldValue(&records[i], c.field)
			if !ok || !c.allowed[v] {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, records[i])
		}
	}
	return out
}

// UniqueValues returns the sorted distinct non-absent values of field
func UniqueValues(records []models.StopRecord, field models.Field) ([]string, error) {
	if err := checkField(field); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	values := make([]string, 0)
	for i := range records {
		v, ok := fieldValue(&records[i], field)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}

	sort.Strings(values)
	return values, nil
}

// Options collects the choices for the three filter fields
func Options(records []models.StopRecord) models.FilterOptions {
	countries, _ := UniqueValues(records, models.FieldCountryName)
	genders, _ := UniqueValues(records, models.FieldDriverGender)
	violations, _ := UniqueValues(records, models.FieldViolation)
	return models.FilterOptions{
		Countries:  countries,
		Genders:    genders,
		Violations: violations,
	}
}
