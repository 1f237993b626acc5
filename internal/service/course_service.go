package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/repository"
)

// CourseService covers staff-side course and timetable maintenance.
type CourseService struct {
	courseRepo *repository.CourseRepository
	slotRepo   *repository.SlotRepository
	catalog    *CatalogService
	log        zerolog.Logger
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	slotRepo *repository.SlotRepository,
	catalog *CatalogService,
	log zerolog.Logger,
) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		slotRepo:   slotRepo,
		catalog:    catalog,
		log:        log.With().Str("component", "course_service").Logger(),
	}
}

func (s *CourseService) GetAll(ctx context.Context) ([]model.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

func (s *CourseService) Create(ctx context.Context, c *model.Course) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	return s.courseRepo.Create(ctx, c)
}

func (s *CourseService) Update(ctx context.Context, c *model.Course) error {
	return s.courseRepo.Update(ctx, c)
}

func (s *CourseService) Delete(ctx context.Context, id int) error {
	return s.courseRepo.Delete(ctx, id)
}

// Slots returns a course's timetable for one term.
func (s *CourseService) Slots(ctx context.Context, code string, academicYear int, term string) ([]model.TimeSlot, error) {
	return s.slotRepo.GetByCourse(ctx, strings.ToUpper(strings.TrimSpace(code)), academicYear, term)
}

// ReplaceSlots swaps a course's timetable for one term and invalidates
// the cached catalog. Slot rows are parsed and validated before any
// write happens; one bad row rejects the whole payload.
func (s *CourseService) ReplaceSlots(ctx context.Context, code string, req model.ReplaceSlotsRequest) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	slots := make([]model.TimeSlot, 0, len(req.Slots))
	for i, row := range req.Slots {
		day, err := model.ParseWeekday(row.Day)
		if err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		start, err := model.ParseClock(row.Start)
		if err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		end, err := model.ParseClock(row.End)
		if err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		slot := model.TimeSlot{
			CourseCode: code,
			Section:    row.Section,
			Day:        day,
			Start:      start,
			End:        end,
			Kind:       model.SlotKind(row.Kind),
		}
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		slots = append(slots, slot)
	}

	if err := s.slotRepo.ReplaceForCourse(ctx, code, req.AcademicYear, req.Term, slots); err != nil {
		return fmt.Errorf("replace slots: %w", err)
	}

	s.catalog.Invalidate(ctx, req.AcademicYear, req.Term)
	s.log.Info().Str("course", code).Int("slots", len(slots)).Msg("timetable replaced")
	return nil
}
