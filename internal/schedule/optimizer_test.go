package schedule

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/unifylabs/unify-backend/internal/model"
)

func slot(course string, section int, day model.Weekday, start, end string) model.TimeSlot {
	s, err := model.ParseClock(start)
	if err != nil {
		panic(err)
	}
	e, err := model.ParseClock(end)
	if err != nil {
		panic(err)
	}
	return model.TimeSlot{
		CourseCode: course,
		Section:    section,
		Day:        day,
		Start:      s,
		End:        e,
		Kind:       model.SlotLecture,
	}
}

func sectionMap(slots ...model.TimeSlot) SectionMap {
	m := SectionMap{}
	for _, s := range slots {
		if m[s.CourseCode] == nil {
			m[s.CourseCode] = map[int][]model.TimeSlot{}
		}
		m[s.CourseCode][s.Section] = append(m[s.CourseCode][s.Section], s)
	}
	return m
}

// assertConflictFree checks the no-conflict property: no two same-day
// slots in the result may have intersecting half-open intervals.
func assertConflictFree(t *testing.T, schedule []model.TimeSlot) {
	t.Helper()
	for i, a := range schedule {
		for _, b := range schedule[i+1:] {
			if a.Overlaps(b) {
				t.Fatalf("conflicting slots in result: %+v and %+v", a, b)
			}
		}
	}
}

// assertCoversCourses checks the completeness property: exactly one
// section chosen per distinct requested course.
func assertCoversCourses(t *testing.T, schedule []model.TimeSlot, courses []string) {
	t.Helper()
	chosen := map[string]int{}
	for _, s := range schedule {
		if prev, ok := chosen[s.CourseCode]; ok && prev != s.Section {
			t.Fatalf("course %s has two sections in result: %d and %d", s.CourseCode, prev, s.Section)
		}
		chosen[s.CourseCode] = s.Section
	}
	if len(chosen) != len(courses) {
		t.Fatalf("result covers %d courses, want %d", len(chosen), len(courses))
	}
	for _, c := range courses {
		if _, ok := chosen[c]; !ok {
			t.Fatalf("course %s missing from result", c)
		}
	}
}

func TestSolveSingleCourseTrivial(t *testing.T) {
	m := sectionMap(
		slot("CS101", 1, model.Monday, "09:00", "10:00"),
		slot("CS101", 1, model.Wednesday, "09:00", "10:00"),
	)

	res := Solve(context.Background(), m)
	if res.Status != StatusOK {
		t.Fatalf("status = %s, want ok", res.Status)
	}
	if len(res.Schedule) != 2 {
		t.Fatalf("schedule has %d slots, want 2", len(res.Schedule))
	}
	assertConflictFree(t, res.Schedule)
	assertCoversCourses(t, res.Schedule, []string{"CS101"})
}

func TestSolveAllCombinationsConflict(t *testing.T) {
	// Spec scenario: A1 Mon 9-10, A2 Mon 10-11, B1 Mon 9:30-10:30.
	// B1 overlaps both A sections, so no combination works.
	m := sectionMap(
		slot("A", 1, model.Monday, "09:00", "10:00"),
		slot("A", 2, model.Monday, "10:00", "11:00"),
		slot("B", 1, model.Monday, "09:30", "10:30"),
	)

	res := Solve(context.Background(), m)
	if res.Status != StatusNoSolution {
		t.Fatalf("status = %s, want no_solution", res.Status)
	}
	if res.Schedule != nil {
		t.Fatalf("no_solution result carries a schedule: %+v", res.Schedule)
	}
}

func TestSolveDifferentDaysNeverConflict(t *testing.T) {
	// Same as above but B meets on Tuesday: determinism picks A1+B1.
	m := sectionMap(
		slot("A", 1, model.Monday, "09:00", "10:00"),
		slot("A", 2, model.Monday, "10:00", "11:00"),
		slot("B", 1, model.Tuesday, "09:30", "10:30"),
	)

	res := Solve(context.Background(), m)
	if res.Status != StatusOK {
		t.Fatalf("status = %s, want ok", res.Status)
	}
	assertConflictFree(t, res.Schedule)
	assertCoversCourses(t, res.Schedule, []string{"A", "B"})
	for _, s := range res.Schedule {
		if s.CourseCode == "A" && s.Section != 1 {
			t.Fatalf("course A section = %d, want first compatible section 1", s.Section)
		}
	}
}

func TestSolveBackToBackSlotsAreCompatible(t *testing.T) {
	// Half-open intervals: ending at 10:00 and starting at 10:00 coexist.
	m := sectionMap(
		slot("A", 1, model.Monday, "09:00", "10:00"),
		slot("B", 1, model.Monday, "10:00", "11:00"),
	)

	res := Solve(context.Background(), m)
	if res.Status != StatusOK {
		t.Fatalf("status = %s, want ok", res.Status)
	}
	assertCoversCourses(t, res.Schedule, []string{"A", "B"})
}

func TestSolveFindsBuriedSolution(t *testing.T) {
	// Exhaustiveness: three courses with three sections each, built so
	// exactly one global combination (A3, B3, C3) is conflict-free. The
	// search must backtrack past the earlier sections to reach it.
	m := SectionMap{}
	days := []model.Weekday{model.Sunday, model.Tuesday, model.Thursday}
	for i, course := range []string{"A", "B", "C"} {
		m[course] = map[int][]model.TimeSlot{
			// Sections 1 and 2 of every course collide on Monday 9-11.
			1: {slot(course, 1, model.Monday, "09:00", "11:00")},
			2: {slot(course, 2, model.Monday, "09:00", "11:00")},
			// Section 3 meets alone on a distinct day.
			3: {slot(course, 3, days[i], "09:00", "11:00")},
		}
	}

	res := Solve(context.Background(), m)
	if res.Status != StatusOK {
		t.Fatalf("status = %s, want ok", res.Status)
	}
	assertConflictFree(t, res.Schedule)
	assertCoversCourses(t, res.Schedule, []string{"A", "B", "C"})
	for _, s := range res.Schedule {
		if s.Section != 3 {
			t.Fatalf("course %s section = %d, want the only feasible section 3", s.CourseCode, s.Section)
		}
	}
}

func TestSolveEarlierCourseForcesBacktracking(t *testing.T) {
	// A single-section course still participates in backtracking: A's
	// first section blocks C (one section only), so the search must
	// revisit A even though B sits between them.
	m := sectionMap(
		slot("A", 1, model.Monday, "09:00", "10:00"),
		slot("A", 2, model.Tuesday, "09:00", "10:00"),
		slot("B", 1, model.Wednesday, "09:00", "10:00"),
		slot("C", 1, model.Monday, "09:30", "10:30"),
	)

	res := Solve(context.Background(), m)
	if res.Status != StatusOK {
		t.Fatalf("status = %s, want ok", res.Status)
	}
	assertConflictFree(t, res.Schedule)
	assertCoversCourses(t, res.Schedule, []string{"A", "B", "C"})
	for _, s := range res.Schedule {
		if s.CourseCode == "A" && s.Section != 2 {
			t.Fatalf("course A section = %d, want 2 after backtracking", s.Section)
		}
	}
}

func TestSolveDeterministic(t *testing.T) {
	m := sectionMap(
		slot("MATH201", 1, model.Sunday, "08:00", "09:30"),
		slot("MATH201", 2, model.Monday, "08:00", "09:30"),
		slot("CS202", 1, model.Sunday, "08:30", "10:00"),
		slot("CS202", 2, model.Tuesday, "08:30", "10:00"),
		slot("PHYS101", 1, model.Wednesday, "11:00", "12:30"),
	)

	first := Solve(context.Background(), m)
	if first.Status != StatusOK {
		t.Fatalf("status = %s, want ok", first.Status)
	}
	for i := 0; i < 10; i++ {
		again := Solve(context.Background(), m)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\nfirst: %+v\nagain: %+v", i, first, again)
		}
	}
}

func TestSolveResultSortedSaturdayFirst(t *testing.T) {
	m := sectionMap(
		slot("A", 1, model.Thursday, "09:00", "10:00"),
		slot("B", 1, model.Saturday, "13:00", "14:00"),
		slot("C", 1, model.Saturday, "08:00", "09:00"),
		slot("D", 1, model.Monday, "09:00", "10:00"),
	)

	res := Solve(context.Background(), m)
	if res.Status != StatusOK {
		t.Fatalf("status = %s, want ok", res.Status)
	}
	for i := 1; i < len(res.Schedule); i++ {
		prev, cur := res.Schedule[i-1], res.Schedule[i]
		if cur.Day < prev.Day || (cur.Day == prev.Day && cur.Start < prev.Start) {
			t.Fatalf("schedule out of order at %d: %+v before %+v", i, prev, cur)
		}
	}
	if res.Schedule[0].CourseCode != "C" {
		t.Fatalf("first slot = %s, want Saturday morning course C", res.Schedule[0].CourseCode)
	}
}

func TestSolveHonorsDeadline(t *testing.T) {
	// A worst-case instance: nine freely-combinable courses (4 sections
	// each, no cross-course conflicts) followed by a final course that
	// collides with the first one in every combination. The search must
	// grind through all 4^9 assignments before it can conclude anything,
	// so an already-expired deadline has to surface as a timeout.
	m := SectionMap{}
	days := []model.Weekday{
		model.Saturday, model.Sunday, model.Monday,
		model.Tuesday, model.Wednesday, model.Thursday,
	}
	for i := 1; i <= 9; i++ {
		code := "C0" + string(rune('0'+i))
		start := model.MinuteOfDay(8*60 + i*60)
		m[code] = map[int][]model.TimeSlot{}
		for sec := 1; sec <= 4; sec++ {
			// All sections of a course share one window on one day, so
			// the filler courses never conflict with each other.
			m[code][sec] = []model.TimeSlot{{
				CourseCode: code, Section: sec, Day: days[i%6],
				Start: start, End: start + 50, Kind: model.SlotLecture,
			}}
		}
	}
	m["C99"] = map[int][]model.TimeSlot{1: {{
		CourseCode: "C99", Section: 1, Day: days[1%6],
		Start: 8*60 + 60, End: 8*60 + 110, Kind: model.SlotLecture,
	}}}

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	res := Solve(ctx, m)
	if res.Status != StatusTimeout {
		t.Fatalf("status = %s, want timeout", res.Status)
	}
}

func TestSolveExhaustiveAgainstBruteForce(t *testing.T) {
	// Cross-check the solver against a naive recursive enumeration on a
	// grid of small synthetic instances.
	type instance struct {
		name string
		m    SectionMap
	}
	instances := []instance{
		{
			name: "two courses tight fit",
			m: sectionMap(
				slot("A", 1, model.Monday, "09:00", "12:00"),
				slot("A", 2, model.Monday, "08:00", "09:00"),
				slot("B", 1, model.Monday, "08:30", "10:30"),
				slot("B", 2, model.Monday, "11:00", "12:00"),
			),
		},
		{
			name: "multi-slot sections",
			m: sectionMap(
				slot("A", 1, model.Monday, "09:00", "10:00"),
				slot("A", 1, model.Wednesday, "09:00", "10:00"),
				slot("B", 1, model.Wednesday, "09:30", "10:30"),
				slot("B", 2, model.Wednesday, "10:00", "11:00"),
			),
		},
		{
			name: "unsolvable triple",
			m: sectionMap(
				slot("A", 1, model.Sunday, "09:00", "11:00"),
				slot("B", 1, model.Sunday, "10:00", "12:00"),
				slot("C", 1, model.Sunday, "10:30", "11:30"),
			),
		},
	}

	for _, tc := range instances {
		t.Run(tc.name, func(t *testing.T) {
			want := bruteForceSolvable(tc.m)
			res := Solve(context.Background(), tc.m)
			got := res.Status == StatusOK
			if got != want {
				t.Fatalf("solver found=%v, brute force found=%v", got, want)
			}
			if got {
				assertConflictFree(t, res.Schedule)
				assertCoversCourses(t, res.Schedule, tc.m.Courses())
			}
		})
	}
}

// bruteForceSolvable enumerates every one-section-per-course combination
// recursively. Only used as a test oracle on tiny instances.
func bruteForceSolvable(m SectionMap) bool {
	courses := m.Courses()
	var rec func(i int, chosen []model.TimeSlot) bool
	rec = func(i int, chosen []model.TimeSlot) bool {
		if i == len(courses) {
			return true
		}
		for _, secSlots := range m[courses[i]] {
			if compatible(chosen, secSlots) {
				if rec(i+1, append(chosen, secSlots...)) {
					return true
				}
			}
		}
		return false
	}
	return rec(0, nil)
}
