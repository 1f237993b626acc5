package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/schedule"
)

// ErrNoCourses is returned when a request carries no usable course codes.
var ErrNoCourses = errors.New("no course codes provided")

// MissingCoursesError reports requested courses with zero offered
// sections for the term. It is detected before the search starts so the
// caller gets the offending codes instead of an opaque no-solution.
type MissingCoursesError struct {
	Codes []string
}

func (e *MissingCoursesError) Error() string {
	return fmt.Sprintf("no offered sections for: %s", strings.Join(e.Codes, ", "))
}

// SlotStore is the read-only schedule-slot lookup the optimizer consumes.
// An unknown course yields no rows, not an error.
type SlotStore interface {
	GetByCourses(ctx context.Context, codes []string, academicYear int, term string) ([]model.TimeSlot, error)
}

// OptimizationService resolves course codes against the slot store and
// runs the backtracking search. It performs no logging and no retries:
// malformed input and upstream failures surface as typed errors, and
// "no solution" is an ordinary result, not an error.
type OptimizationService struct {
	store  SlotStore
	budget time.Duration
}

func NewOptimizationService(store SlotStore, budget time.Duration) *OptimizationService {
	return &OptimizationService{store: store, budget: budget}
}

// Optimize finds one section per requested course such that no two
// weekly meetings overlap, or reports that none exists.
//
// Input course codes are trimmed, upper-cased and deduplicated; an
// effectively empty request returns ErrNoCourses. Any requested course
// with zero offered sections aborts with MissingCoursesError before the
// search begins. Slot-store failures propagate unmodified.
func (s *OptimizationService) Optimize(ctx context.Context, courseCodes []string, academicYear int, term string) (schedule.Result, error) {
	codes := normalizeCodes(courseCodes)
	if len(codes) == 0 {
		return schedule.Result{}, ErrNoCourses
	}

	slots, err := s.store.GetByCourses(ctx, codes, academicYear, term)
	if err != nil {
		return schedule.Result{}, fmt.Errorf("fetch slots: %w", err)
	}

	sections := schedule.BuildSectionMap(slots)

	var missing []string
	for _, code := range codes {
		if len(sections[code]) == 0 {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return schedule.Result{}, &MissingCoursesError{Codes: missing}
	}

	searchCtx, cancel := context.WithTimeout(ctx, s.budget)
	defer cancel()

	return schedule.Solve(searchCtx, sections), nil
}

// normalizeCodes trims, upper-cases, deduplicates and sorts the
// requested codes. Requesting the same course twice means scheduling it
// once.
func normalizeCodes(raw []string) []string {
	seen := map[string]bool{}
	codes := make([]string, 0, len(raw))
	for _, c := range raw {
		code := strings.ToUpper(strings.TrimSpace(c))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
