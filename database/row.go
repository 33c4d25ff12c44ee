package database

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Layouts of the derived date attributes.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

// Row is one result row keyed by column alias.
type Row map[string]any

// Has reports if the row holds the given column.
func (r Row) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Any returns the raw value of the column, or nil.
func (r Row) Any(key string) any {
	return r[key]
}

// Int returns the column as an integer. Missing or unparsable values are 0.
func (r Row) Int(key string) int64 {
	switch v := r[key].(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return int64(v)
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// Float returns the column as a float. Missing or unparsable values are 0.
func (r Row) Float(key string) float64 {
	switch v := r[key].(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case []byte:
		f, _ := strconv.ParseFloat(string(v), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return float64(r.Int(key))
	}
}

// Bool returns the column as a boolean.
func (r Row) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return r.Int(key) != 0
		}
		return b
	default:
		return r.Int(key) != 0
	}
}

// String returns the column as a string.
func (r Row) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Strings splits a comma separated column into its trimmed parts.
func (r Row) Strings(key string) []string {
	s := r.String(key)
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Scaled returns the numeric column shifted down by exp decimal places,
// as stored by float and price aggregates.
func (r Row) Scaled(key string, exp int) float64 {
	return decimal.NewFromFloat(r.Float(key)).Shift(-int32(exp)).InexactFloat64()
}

// Date formats the unix time column with DateLayout. A zero time is empty.
func (r Row) Date(key string) string {
	return r.formatTime(key, DateLayout)
}

// DateTime formats the unix time column with DateTimeLayout. A zero time
// is empty.
func (r Row) DateTime(key string) string {
	return r.formatTime(key, DateTimeLayout)
}

func (r Row) formatTime(key, layout string) string {
	n := r.Int(key)
	if n == 0 {
		return ""
	}
	return time.Unix(n, 0).UTC().Format(layout)
}
