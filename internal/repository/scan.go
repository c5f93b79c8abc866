package repository

import (
	"database/sql"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Drivers disagree on Go types for the same column: MySQL hands back
// []byte for text and decimals, SQLite int64 for booleans, pgx strings for
// numerics, DuckDB *big.Int for HUGEINT sums. The helpers below normalise
// a raw scanned value.

func scanRow(rows *sql.Rows, columnCount int) ([]any, error) {
	vals := make([]any, columnCount)
	ptrs := make([]any, columnCount)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	err := rows.Scan(ptrs...)
	return vals, err
}

func asString(v any) (*string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return &t, nil
	case []byte:
		s := string(t)
		return &s, nil
	case time.Time:
		s := t.Format(time.RFC3339)
		return &s, nil
	case int64, int32, int, float64, float32, bool:
		s := strings.TrimSpace(toText(t))
		return &s, nil
	}
	return nil, errors.Errorf("cannot read %T as text", v)
}

func asInt(v any) (*int64, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case int64:
		return &t, nil
	case int32:
		i := int64(t)
		return &i, nil
	case int:
		i := int64(t)
		return &i, nil
	case int16:
		i := int64(t)
		return &i, nil
	case int8:
		i := int64(t)
		return &i, nil
	case uint64:
		i := int64(t)
		return &i, nil
	case uint32:
		i := int64(t)
		return &i, nil
	case float64:
		i := int64(t)
		return &i, nil
	case *big.Int:
		if t == nil {
			return nil, nil
		}
		if !t.IsInt64() {
			return nil, errors.Errorf("integer %s overflows int64", t.String())
		}
		i := t.Int64()
		return &i, nil
	case bool:
		var i int64
		if t {
			i = 1
		}
		return &i, nil
	case []byte:
		return parseInt(string(t))
	case string:
		return parseInt(t)
	}
	return nil, errors.Errorf("cannot read %T as integer", v)
}

func parseInt(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &i, nil
	}
	// decimals such as SUM() results in MySQL come back as "12.0000"
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse %q as integer", s)
	}
	i := int64(f)
	return &i, nil
}

func asFloat(v any) (*float64, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return &t, nil
	case float32:
		f := float64(t)
		return &f, nil
	case *big.Int:
		if t == nil {
			return nil, nil
		}
		f, _ := new(big.Float).SetInt(t).Float64()
		return &f, nil
	case []byte, string:
		s := strings.TrimSpace(toText(t))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot parse %q as float", s)
		}
		return &f, nil
	}
	i, err := asInt(v)
	if err != nil {
		return nil, errors.Errorf("cannot read %T as float", v)
	}
	f := float64(*i)
	return &f, nil
}

func asBool(v any) (*bool, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return &t, nil
	case []byte, string:
		s := strings.ToLower(strings.TrimSpace(toText(t)))
		switch s {
		case "1", "t", "true", "yes", "y":
			b := true
			return &b, nil
		case "0", "f", "false", "no", "n", "":
			b := false
			return &b, nil
		}
		return nil, errors.Errorf("cannot parse %q as boolean", s)
	}
	i, err := asInt(v)
	if err != nil {
		return nil, errors.Errorf("cannot read %T as boolean", v)
	}
	b := *i != 0
	return &b, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func asTime(v any) (*time.Time, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &t, nil
	case []byte, string:
		s := strings.TrimSpace(toText(t))
		if s == "" {
			return nil, nil
		}
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return &ts, nil
			}
		}
		return nil, errors.Errorf("cannot parse %q as datetime", s)
	}
	return nil, errors.Errorf("cannot read %T as datetime", v)
}

func toText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	}
	return ""
}
