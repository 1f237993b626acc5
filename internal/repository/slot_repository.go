package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unifylabs/unify-backend/internal/model"
)

// SlotRepository is the Schedule Slot Store: read access to the weekly
// meeting slots offered for each course in a term, plus the staff-facing
// write path that maintains them.
type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// GetByCourses returns every slot of every section for the given course
// codes in one term. Courses with no offerings simply produce no rows;
// that is not an error here — the optimization service decides how to
// report missing courses.
func (r *SlotRepository) GetByCourses(ctx context.Context, codes []string, academicYear int, term string) ([]model.TimeSlot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, course_code, section, day, start_min, end_min, kind
		FROM schedule_slots
		WHERE course_code = ANY($1) AND academic_year = $2 AND term = $3
		ORDER BY course_code, section, day, start_min`,
		codes, academicYear, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSlots(rows)
}

// GetByCourse returns one course's slots for a term.
func (r *SlotRepository) GetByCourse(ctx context.Context, code string, academicYear int, term string) ([]model.TimeSlot, error) {
	return r.GetByCourses(ctx, []string{code}, academicYear, term)
}

// SectionExists reports whether a (course, section) pair has at least
// one slot in the given term.
func (r *SlotRepository) SectionExists(ctx context.Context, code string, section, academicYear int, term string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM schedule_slots
			WHERE course_code = $1 AND section = $2 AND academic_year = $3 AND term = $4
		)`,
		code, section, academicYear, term).Scan(&exists)
	return exists, err
}

// ReplaceForCourse atomically swaps all slots of a course for a term.
func (r *SlotRepository) ReplaceForCourse(ctx context.Context, code string, academicYear int, term string, slots []model.TimeSlot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM schedule_slots WHERE course_code = $1 AND academic_year = $2 AND term = $3`,
		code, academicYear, term); err != nil {
		return err
	}

	if err := insertSlots(ctx, tx, academicYear, term, slots); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// CreateBatch inserts slots in one transaction, used by the CSV importer.
func (r *SlotRepository) CreateBatch(ctx context.Context, academicYear int, term string, slots []model.TimeSlot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertSlots(ctx, tx, academicYear, term, slots); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertSlots(ctx context.Context, tx pgx.Tx, academicYear int, term string, slots []model.TimeSlot) error {
	for _, s := range slots {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("reject slot: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO schedule_slots (course_code, section, day, start_min, end_min, kind, academic_year, term)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			s.CourseCode, s.Section, int(s.Day), int(s.Start), int(s.End), string(s.Kind),
			academicYear, term); err != nil {
			return err
		}
	}
	return nil
}

// scanSlots converts slot rows into typed TimeSlots. The day column
// stores the Saturday-first ordinal; a row outside the enum aborts the
// whole read: bad timetable data is rejected at this boundary instead
// of being guessed at inside the optimizer.
func scanSlots(rows pgx.Rows) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	for rows.Next() {
		var (
			s                model.TimeSlot
			day              int
			startMin, endMin int
			kind             string
		)
		if err := rows.Scan(&s.ID, &s.CourseCode, &s.Section, &day, &startMin, &endMin, &kind); err != nil {
			return nil, err
		}
		if !model.Weekday(day).Valid() {
			return nil, fmt.Errorf("slot %d: weekday ordinal %d out of range", s.ID, day)
		}
		s.Day = model.Weekday(day)
		s.Start = model.MinuteOfDay(startMin)
		s.End = model.MinuteOfDay(endMin)
		s.Kind = model.SlotKind(kind)
		if err := s.Validate(); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}
