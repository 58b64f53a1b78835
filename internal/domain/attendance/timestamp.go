package attendance

import (
	"fmt"
	"time"
)

var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	TimestampLayout,
}

// ToWireTimestamp interprets a datetime-local value in loc and renders it in UTC as TimestampLayout.
func ToWireTimestamp(local string, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, local, loc); err == nil {
			return t.UTC().Format(TimestampLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognised timestamp %q", local)
}
