package request

import (
	"encoding/json"
	"time"

	"shareit/internal/pkg/errs"
)

// DateTimeLayout is the zone-less wire format; such values are read as UTC.
const DateTimeLayout = "2006-01-02T15:04:05"

var ErrInvalidDateTime = errs.Validation("timestamps must look like 2006-01-02T15:04:05 or RFC 3339")

type DateTime struct {
	time.Time
}

func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateTimeLayout, s, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidDateTime
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidDateTime
	}
	t, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(DateTimeLayout))
}
