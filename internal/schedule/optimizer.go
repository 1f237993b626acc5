// Package schedule implements the course-schedule conflict optimizer: an
// exhaustive backtracking search that picks one section per requested
// course such that no two weekly meetings overlap. The package is pure
// in-memory computation; fetching slot data is the caller's concern.
package schedule

import (
	"context"
	"sort"

	"github.com/unifylabs/unify-backend/internal/model"
)

// SectionMap groups a course's slots by section number:
// course code -> section number -> meetings of that section.
// Sections are atomic: a student takes all of a section's slots or none.
type SectionMap map[string]map[int][]model.TimeSlot

// Courses returns the distinct course codes in lexicographic order. The
// fixed order makes repeated searches over identical data deterministic.
func (m SectionMap) Courses() []string {
	codes := make([]string, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Status tags the outcome of a search.
type Status string

const (
	// StatusOK means a conflict-free selection was found.
	StatusOK Status = "ok"
	// StatusNoSolution means every combination of sections was tried and
	// all of them conflict. It is a normal outcome, not an error.
	StatusNoSolution Status = "no_solution"
	// StatusTimeout means the context deadline expired before the search
	// space was exhausted. Nothing can be concluded about solvability.
	StatusTimeout Status = "timeout"
)

// Result is the outcome of one search. Schedule is populated only for
// StatusOK, sorted by day order (Saturday first), then start time, then
// course code.
type Result struct {
	Status   Status           `json:"status"`
	Schedule []model.TimeSlot `json:"schedule,omitempty"`
}

// deadlineCheckInterval is how many search steps pass between context
// deadline checks. The iterative loop makes this a constant-cost poll.
const deadlineCheckInterval = 1024

// frame is one level of the explicit backtracking stack: the position in
// a course's section list and the accumulator length to rewind to when
// the frame is popped.
type frame struct {
	next      int // index into the course's ordered section list
	chosenLen int // len(chosen) before this course's slots were appended
}

// Solve searches for one section per course such that no two chosen
// slots overlap. The search is exhaustive: StatusNoSolution is returned
// only after every one-section-per-course combination has been rejected.
//
// Iteration order is fixed (lexicographic course codes, ascending
// section numbers), so identical input always yields the same selection:
// the first conflict-free combination in that order.
//
// The recursion is modeled with an explicit stack so a context deadline
// can be polled on every step without unwinding native call frames.
func Solve(ctx context.Context, sections SectionMap) Result {
	courses := sections.Courses()
	n := len(courses)

	// Ascending section numbers per course, fixed up front.
	ordered := make([][]int, n)
	for i, code := range courses {
		nums := make([]int, 0, len(sections[code]))
		for num := range sections[code] {
			nums = append(nums, num)
		}
		sort.Ints(nums)
		ordered[i] = nums
	}

	chosen := make([]model.TimeSlot, 0, 2*n)
	stack := make([]frame, 1, n+1)
	stack[0] = frame{}
	steps := 0

	for len(stack) > 0 {
		depth := len(stack) - 1
		if depth == n {
			// Every course has a compatible section assigned.
			return Result{Status: StatusOK, Schedule: sortSchedule(chosen)}
		}

		steps++
		if steps%deadlineCheckInterval == 0 && ctx.Err() != nil {
			return Result{Status: StatusTimeout}
		}

		f := &stack[depth]
		if f.next >= len(ordered[depth]) {
			// All sections of this course tried: pop the frame and
			// rewind the accumulator past the previous course's slots
			// so its next section can be attempted.
			stack = stack[:depth]
			chosen = chosen[:f.chosenLen]
			continue
		}

		secSlots := sections[courses[depth]][ordered[depth][f.next]]
		f.next++

		if !compatible(chosen, secSlots) {
			continue
		}

		stack = append(stack, frame{chosenLen: len(chosen)})
		chosen = append(chosen, secSlots...)
	}

	return Result{Status: StatusNoSolution}
}

// compatible reports whether candidate slots can join the accumulated
// selection without any same-day interval overlap. It short-circuits on
// the first conflicting pair.
func compatible(chosen, candidate []model.TimeSlot) bool {
	for _, c := range candidate {
		for _, e := range chosen {
			if c.Overlaps(e) {
				return false
			}
		}
	}
	return true
}

// sortSchedule orders a winning selection for stable presentation:
// academic week order (Saturday first), then start time, then course.
func sortSchedule(slots []model.TimeSlot) []model.TimeSlot {
	out := make([]model.TimeSlot, len(slots))
	copy(out, slots)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].CourseCode < out[j].CourseCode
	})
	return out
}
