package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unifylabs/unify-backend/internal/model"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO courses (code, name, credits, instructor)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		c.Code, c.Name, c.Credits, c.Instructor).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	var c model.Course
	err := r.pool.QueryRow(ctx, `
		SELECT id, code, name, credits, instructor, created_at, updated_at
		FROM courses WHERE code = $1`, code).
		Scan(&c.ID, &c.Code, &c.Name, &c.Credits, &c.Instructor, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepository) GetAll(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, code, name, credits, instructor, created_at, updated_at
		FROM courses ORDER BY code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Credits, &c.Instructor, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE courses SET name = $1, credits = $2, instructor = $3, updated_at = NOW()
		WHERE id = $4`,
		c.Name, c.Credits, c.Instructor, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	return err
}

// ListCatalog returns the distinct courses that have slots in a term,
// with per-section slot counts grouped by meeting kind.
func (r *CourseRepository) ListCatalog(ctx context.Context, academicYear int, term string) ([]model.CatalogEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.course_code, COALESCE(c.name, s.course_code), COALESCE(c.credits, 0),
		       s.section, s.kind, COUNT(*)
		FROM schedule_slots s
		LEFT JOIN courses c ON c.code = s.course_code
		WHERE s.academic_year = $1 AND s.term = $2
		GROUP BY s.course_code, c.name, c.credits, s.section, s.kind
		ORDER BY s.course_code, s.section`,
		academicYear, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byCode := map[string]*model.CatalogEntry{}
	var order []string
	for rows.Next() {
		var (
			code, name, kind string
			credits, section, count int
		)
		if err := rows.Scan(&code, &name, &credits, &section, &kind, &count); err != nil {
			return nil, err
		}
		entry, ok := byCode[code]
		if !ok {
			entry = &model.CatalogEntry{Code: code, Name: name, Credits: credits}
			byCode[code] = entry
			order = append(order, code)
		}
		summary := model.SectionSummary{Section: section, SlotCount: count}
		if model.SlotKind(kind) == model.SlotLecture {
			entry.LectureSections = append(entry.LectureSections, summary)
		} else {
			entry.LabSections = append(entry.LabSections, summary)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries := make([]model.CatalogEntry, 0, len(order))
	for _, code := range order {
		entries = append(entries, *byCode[code])
	}
	return entries, nil
}
