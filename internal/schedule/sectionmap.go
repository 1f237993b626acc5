package schedule

import "github.com/unifylabs/unify-backend/internal/model"

// BuildSectionMap groups flat slot rows into the per-course, per-section
// structure the solver consumes. Built once at the data-access boundary;
// never re-derived mid-search.
func BuildSectionMap(slots []model.TimeSlot) SectionMap {
	m := SectionMap{}
	for _, s := range slots {
		bySection, ok := m[s.CourseCode]
		if !ok {
			bySection = map[int][]model.TimeSlot{}
			m[s.CourseCode] = bySection
		}
		bySection[s.Section] = append(bySection[s.Section], s)
	}
	return m
}
