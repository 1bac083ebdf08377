package timezone

import (
	"fmt"
	"time"
)

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Stockholm")
	if err != nil {
		panic(err)
	}
}

// "updated" timestamps of statistics tables are local Swedish time
// without an offset, so they are always parsed in Stockholm
func Now() time.Time {
	return time.Now().In(Location)
}

var updatedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseUpdated parses the "updated" field of a table's source info.
func ParseUpdated(value string) (time.Time, error) {
	for _, layout := range updatedLayouts {
		t, err := time.ParseInLocation(layout, value, Location)
		if err == nil {
			return t.In(Location), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse updated timestamp %q", value)
}
