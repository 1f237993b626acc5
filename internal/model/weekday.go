package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Weekday is a closed weekday enum ordered by the academic week, which
// starts on Saturday. The ordinal value is the sort key for timetables.
type Weekday int

const (
	Saturday Weekday = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
)

var weekdayCodes = [...]string{"SAT", "SUN", "MON", "TUE", "WED", "THU", "FRI"}

// weekdayAliases maps every accepted spelling to its canonical value.
// Legacy timetable exports use TUES/THURS and occasionally full names.
var weekdayAliases = map[string]Weekday{
	"SAT": Saturday, "SATURDAY": Saturday,
	"SUN": Sunday, "SUNDAY": Sunday,
	"MON": Monday, "MONDAY": Monday,
	"TUE": Tuesday, "TUES": Tuesday, "TUESDAY": Tuesday,
	"WED": Wednesday, "WEDNESDAY": Wednesday,
	"THU": Thursday, "THUR": Thursday, "THURS": Thursday, "THURSDAY": Thursday,
	"FRI": Friday, "FRIDAY": Friday,
}

// ParseWeekday resolves a day string to its canonical Weekday.
// Unknown spellings are an error, never silently defaulted.
func ParseWeekday(s string) (Weekday, error) {
	d, ok := weekdayAliases[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return d, nil
}

// Valid reports whether d is one of the declared weekday constants.
func (d Weekday) Valid() bool {
	return d >= Saturday && d <= Friday
}

// String returns the canonical three-letter code (SAT, SUN, ...).
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayCodes[d]
}

// MarshalJSON encodes the weekday as its canonical code.
func (d Weekday) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes any accepted spelling into the canonical value.
func (d *Weekday) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseWeekday(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
