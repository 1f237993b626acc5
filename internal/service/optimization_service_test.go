package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/schedule"
)

// fakeSlotStore serves canned slots filtered by requested codes, like
// the real store it returns no rows for unknown courses.
type fakeSlotStore struct {
	slots []model.TimeSlot
	err   error
}

func (f *fakeSlotStore) GetByCourses(_ context.Context, codes []string, _ int, _ string) ([]model.TimeSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := map[string]bool{}
	for _, c := range codes {
		wanted[c] = true
	}
	var out []model.TimeSlot
	for _, s := range f.slots {
		if wanted[s.CourseCode] {
			out = append(out, s)
		}
	}
	return out, nil
}

func ts(course string, section int, day model.Weekday, startMin, endMin int) model.TimeSlot {
	return model.TimeSlot{
		CourseCode: course, Section: section, Day: day,
		Start: model.MinuteOfDay(startMin), End: model.MinuteOfDay(endMin),
		Kind: model.SlotLecture,
	}
}

func TestOptimizeEmptyRequest(t *testing.T) {
	svc := NewOptimizationService(&fakeSlotStore{}, time.Second)

	for _, codes := range [][]string{nil, {}, {"", "  "}} {
		if _, err := svc.Optimize(context.Background(), codes, 2025, "SPRING"); !errors.Is(err, ErrNoCourses) {
			t.Errorf("Optimize(%v) error = %v, want ErrNoCourses", codes, err)
		}
	}
}

func TestOptimizeNamesMissingCourses(t *testing.T) {
	store := &fakeSlotStore{slots: []model.TimeSlot{
		ts("CS101", 1, model.Monday, 9*60, 10*60),
	}}
	svc := NewOptimizationService(store, time.Second)

	_, err := svc.Optimize(context.Background(), []string{"CS101", "CS999"}, 2025, "SPRING")
	var missing *MissingCoursesError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingCoursesError", err)
	}
	if len(missing.Codes) != 1 || missing.Codes[0] != "CS999" {
		t.Fatalf("missing codes = %v, want [CS999]", missing.Codes)
	}
	if !strings.Contains(missing.Error(), "CS999") {
		t.Fatalf("error message %q does not name the course", missing.Error())
	}
}

func TestOptimizeAllCoursesUnknown(t *testing.T) {
	svc := NewOptimizationService(&fakeSlotStore{}, time.Second)

	_, err := svc.Optimize(context.Background(), []string{"XX100", "YY200"}, 2025, "SPRING")
	var missing *MissingCoursesError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingCoursesError", err)
	}
	if len(missing.Codes) != 2 {
		t.Fatalf("missing codes = %v, want both requested courses", missing.Codes)
	}
}

func TestOptimizePropagatesStoreFailure(t *testing.T) {
	upstream := errors.New("connection refused")
	svc := NewOptimizationService(&fakeSlotStore{err: upstream}, time.Second)

	_, err := svc.Optimize(context.Background(), []string{"CS101"}, 2025, "SPRING")
	if !errors.Is(err, upstream) {
		t.Fatalf("error = %v, want wrapped upstream error", err)
	}
}

func TestOptimizeDeduplicatesAndNormalizes(t *testing.T) {
	store := &fakeSlotStore{slots: []model.TimeSlot{
		ts("CS101", 1, model.Monday, 9*60, 10*60),
	}}
	svc := NewOptimizationService(store, time.Second)

	res, err := svc.Optimize(context.Background(), []string{" cs101 ", "CS101", "cs101"}, 2025, "SPRING")
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	if res.Status != schedule.StatusOK {
		t.Fatalf("status = %s, want ok", res.Status)
	}
	if len(res.Schedule) != 1 {
		t.Fatalf("schedule has %d slots, want 1 (course scheduled once)", len(res.Schedule))
	}
}

func TestOptimizeNoSolution(t *testing.T) {
	store := &fakeSlotStore{slots: []model.TimeSlot{
		ts("A", 1, model.Monday, 9*60, 10*60),
		ts("A", 2, model.Monday, 10*60, 11*60),
		ts("B", 1, model.Monday, 9*60+30, 10*60+30),
	}}
	svc := NewOptimizationService(store, time.Second)

	res, err := svc.Optimize(context.Background(), []string{"A", "B"}, 2025, "SPRING")
	if err != nil {
		t.Fatalf("no-solution must not be an error, got: %v", err)
	}
	if res.Status != schedule.StatusNoSolution {
		t.Fatalf("status = %s, want no_solution", res.Status)
	}
}
