package models

import (
	"encoding/json"
	"strings"
	"time"
)

// FlexibleDate is a custom time type that can unmarshal both RFC3339 and "YYYY-MM-DD" formats.
// Grant schedules are usually entered as plain dates.
type FlexibleDate struct {
	time.Time
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexibleDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		f.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		f.Time = t
		return nil
	}

	t, err = time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	f.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexibleDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Time)
}
