package model

import "testing"

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want MinuteOfDay
	}{
		{"00:00", 0},
		{"09:30", 9*60 + 30},
		{"23:59", 23*60 + 59},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if err != nil {
			t.Errorf("ParseClock(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
		if got.String() != tc.in {
			t.Errorf("round trip %q -> %q", tc.in, got.String())
		}
	}
}

func TestParseClockRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"", "9:30", "09.30", "24:00", "12:60", "12:3", "ab:cd", "09:301",
		// every digit position must be a digit; no whitespace, no
		// trailing garbage in the minutes field
		"12:3a", "12: 3", "1a:30", " 9:30", "12:-3", "+2:30",
	} {
		if _, err := ParseClock(in); err == nil {
			t.Errorf("ParseClock(%q) succeeded, want error", in)
		}
	}
}

func TestTimeSlotOverlaps(t *testing.T) {
	base := TimeSlot{CourseCode: "A", Section: 1, Day: Monday, Start: 9 * 60, End: 10 * 60}
	cases := []struct {
		name  string
		other TimeSlot
		want  bool
	}{
		{"identical", TimeSlot{Day: Monday, Start: 9 * 60, End: 10 * 60}, true},
		{"partial overlap", TimeSlot{Day: Monday, Start: 9*60 + 30, End: 10*60 + 30}, true},
		{"contained", TimeSlot{Day: Monday, Start: 9*60 + 15, End: 9*60 + 45}, true},
		{"back to back after", TimeSlot{Day: Monday, Start: 10 * 60, End: 11 * 60}, false},
		{"back to back before", TimeSlot{Day: Monday, Start: 8 * 60, End: 9 * 60}, false},
		{"different day", TimeSlot{Day: Tuesday, Start: 9 * 60, End: 10 * 60}, false},
	}
	for _, tc := range cases {
		if got := base.Overlaps(tc.other); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
		if got := tc.other.Overlaps(base); got != tc.want {
			t.Errorf("%s: Overlaps not symmetric", tc.name)
		}
	}
}

func TestTimeSlotValidate(t *testing.T) {
	good := TimeSlot{CourseCode: "A", Section: 1, Day: Sunday, Start: 8 * 60, End: 9 * 60}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid slot rejected: %v", err)
	}

	bad := []TimeSlot{
		{CourseCode: "A", Section: 1, Day: Weekday(9), Start: 8 * 60, End: 9 * 60},
		{CourseCode: "A", Section: 1, Day: Monday, Start: 9 * 60, End: 9 * 60},
		{CourseCode: "A", Section: 1, Day: Monday, Start: 10 * 60, End: 9 * 60},
	}
	for i, s := range bad {
		if err := s.Validate(); err == nil {
			t.Errorf("invalid slot %d accepted", i)
		}
	}
}

func TestGradePoint(t *testing.T) {
	cases := map[string]float64{"A+": 4.0, "A": 4.0, "A-": 3.7, "B": 3.0, "C-": 1.7, "F": 0.0, "X": 0.0}
	for grade, want := range cases {
		if got := GradePoint(grade); got != want {
			t.Errorf("GradePoint(%q) = %v, want %v", grade, got, want)
		}
	}
}
