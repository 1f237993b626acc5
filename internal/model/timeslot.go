package model

import (
	"encoding/json"
	"fmt"
)

// MinuteOfDay is a wall-clock time expressed as minutes since midnight.
// Slots never span midnight, so comparisons stay within a single day.
type MinuteOfDay int

// ParseClock parses a strict "HH:MM" string. Anything else is an error;
// timetable rows with malformed times are rejected at the data boundary
// rather than patched up with guesses.
func ParseClock(s string) (MinuteOfDay, error) {
	// All four digit positions are checked explicitly; Sscanf-style
	// parsing would tolerate whitespace or trailing garbage.
	if len(s) != 5 || s[2] != ':' ||
		!isClockDigit(s[0]) || !isClockDigit(s[1]) ||
		!isClockDigit(s[3]) || !isClockDigit(s[4]) {
		return 0, fmt.Errorf("malformed clock value %q, want HH:MM", s)
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return MinuteOfDay(h*60 + m), nil
}

func isClockDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// String formats the minute as "HH:MM".
func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// MarshalJSON encodes the minute as an "HH:MM" string.
func (m MinuteOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes an "HH:MM" string.
func (m *MinuteOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// SlotKind categorizes a meeting for display. It plays no part in
// conflict detection.
type SlotKind string

const (
	SlotLecture  SlotKind = "lecture"
	SlotLab      SlotKind = "lab"
	SlotTutorial SlotKind = "tutorial"
)

// TimeSlot is one recurring weekly meeting belonging to a course section.
// All slots sharing a (CourseCode, Section) pair form one atomic unit of
// enrollment.
type TimeSlot struct {
	ID         int         `json:"id,omitempty"`
	CourseCode string      `json:"course_code"`
	Section    int         `json:"section"`
	Day        Weekday     `json:"day"`
	Start      MinuteOfDay `json:"start"`
	End        MinuteOfDay `json:"end"`
	Kind       SlotKind    `json:"kind"`
}

// Validate checks the slot's internal invariants: a known weekday and a
// strictly positive duration within one day.
func (t TimeSlot) Validate() error {
	if !t.Day.Valid() {
		return fmt.Errorf("slot %s section %d: invalid day", t.CourseCode, t.Section)
	}
	if t.Start >= t.End {
		return fmt.Errorf("slot %s section %d: start %s is not before end %s",
			t.CourseCode, t.Section, t.Start, t.End)
	}
	if t.End > 24*60 {
		return fmt.Errorf("slot %s section %d: end %s past midnight", t.CourseCode, t.Section, t.End)
	}
	return nil
}

// Overlaps reports whether two slots collide: same day and intersecting
// half-open [Start, End) intervals. A slot ending at 10:00 does not
// conflict with one starting at 10:00.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	if t.Day != other.Day {
		return false
	}
	return t.Start < other.End && other.Start < t.End
}

// CreateSlotRequest is one slot row in a staff slot-replacement payload.
type CreateSlotRequest struct {
	Section int    `json:"section" binding:"required,min=1,max=99"`
	Day     string `json:"day" binding:"required"`
	Start   string `json:"start" binding:"required,len=5"`
	End     string `json:"end" binding:"required,len=5"`
	Kind    string `json:"kind" binding:"required,oneof=lecture lab tutorial"`
}

// ReplaceSlotsRequest replaces all slots of a course for one term.
type ReplaceSlotsRequest struct {
	AcademicYear int                 `json:"academic_year" binding:"required,min=2000,max=2100"`
	Term         string              `json:"term" binding:"required,oneof=FALL SPRING SUMMER"`
	Slots        []CreateSlotRequest `json:"slots" binding:"required,min=1,dive"`
}
