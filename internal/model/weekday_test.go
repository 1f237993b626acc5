package model

import "testing"

func TestParseWeekdayAliases(t *testing.T) {
	cases := map[string]Weekday{
		"SAT":      Saturday,
		"sat":      Saturday,
		" Sun ":    Sunday,
		"MON":      Monday,
		"TUES":     Tuesday,
		"Tuesday":  Tuesday,
		"WED":      Wednesday,
		"THURS":    Thursday,
		"THU":      Thursday,
		"Thursday": Thursday,
		"FRI":      Friday,
	}
	for in, want := range cases {
		got, err := ParseWeekday(in)
		if err != nil {
			t.Errorf("ParseWeekday(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseWeekday(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseWeekdayRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "MOONDAY", "8", "S"} {
		if _, err := ParseWeekday(in); err == nil {
			t.Errorf("ParseWeekday(%q) succeeded, want error", in)
		}
	}
}

func TestWeekdayOrderStartsSaturday(t *testing.T) {
	if Saturday != 0 || Sunday != 1 || Thursday != 5 || Friday != 6 {
		t.Fatalf("weekday ordinals drifted: SAT=%d SUN=%d THU=%d FRI=%d",
			Saturday, Sunday, Thursday, Friday)
	}
	if Saturday.String() != "SAT" || Thursday.String() != "THU" {
		t.Fatalf("canonical codes drifted: %s, %s", Saturday, Thursday)
	}
}
