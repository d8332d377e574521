package marketplace

import (
	"strconv"
	"strings"
	"time"
)

// rawRecord is one upstream JSON object. The backend has historically used
// inconsistent field names across endpoints and over time ("bedrooms" vs
// "number_of_bedrooms" vs "bed_rooms"), so values are pulled through ordered
// candidate-key lookups instead of fixed struct tags.
type rawRecord map[string]interface{}

// firstString returns the first defined, non-null, non-empty string value
// under the candidate keys. Numbers are stringified. A total miss returns
// ""; the caller supplies default semantics.
func (r rawRecord) firstString(keys ...string) string {
	for _, key := range keys {
		switch v := r[key].(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(v)
		}
	}
	return ""
}

// firstNumber returns the first value parseable as a number under the
// candidate keys. Strings holding numbers count; the upstream emits both.
func (r rawRecord) firstNumber(keys ...string) (float64, bool) {
	for _, key := range keys {
		switch v := r[key].(type) {
		case float64:
			return v, true
		case string:
			if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

func (r rawRecord) firstInt(keys ...string) (int, bool) {
	n, ok := r.firstNumber(keys...)
	return int(n), ok
}

// firstObject returns the first nested object under the candidate keys.
func (r rawRecord) firstObject(keys ...string) (rawRecord, bool) {
	for _, key := range keys {
		if obj, ok := r[key].(map[string]interface{}); ok && len(obj) > 0 {
			return rawRecord(obj), true
		}
	}
	return nil, false
}

// firstSlice returns the first non-empty array under the candidate keys.
func (r rawRecord) firstSlice(keys ...string) ([]interface{}, bool) {
	for _, key := range keys {
		if s, ok := r[key].([]interface{}); ok && len(s) > 0 {
			return s, true
		}
	}
	return nil, false
}

// firstTime returns the first parseable timestamp under the candidate keys.
// The upstream has emitted RFC3339 with and without fractional seconds, and
// occasionally epoch milliseconds.
func (r rawRecord) firstTime(keys ...string) (time.Time, bool) {
	for _, key := range keys {
		switch v := r[key].(type) {
		case string:
			for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
				if t, err := time.Parse(layout, v); err == nil {
					return t, true
				}
			}
		case float64:
			if v > 1e12 { // epoch millis
				return time.UnixMilli(int64(v)).UTC(), true
			}
			if v > 0 {
				return time.Unix(int64(v), 0).UTC(), true
			}
		}
	}
	return time.Time{}, false
}
