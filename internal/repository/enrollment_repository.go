package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unifylabs/unify-backend/internal/model"
)

type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// CreateBatch inserts a set of enrollments in one transaction, so a
// winning selection is persisted all-or-nothing.
func (r *EnrollmentRepository) CreateBatch(ctx context.Context, enrollments []model.Enrollment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range enrollments {
		e := &enrollments[i]
		if err := tx.QueryRow(ctx, `
			INSERT INTO enrollments (student_id, course_id, section, status, academic_year, term)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`,
			e.StudentID, e.CourseID, e.Section, string(e.Status), e.AcademicYear, e.Term).
			Scan(&e.ID, &e.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListByStudent returns a student's enrollments joined with course data,
// newest first.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.student_id, e.course_id, c.code, c.name, c.credits,
		       e.section, e.status, COALESCE(e.grade, ''), COALESCE(e.semester, ''),
		       e.academic_year, e.term, e.created_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.student_id = $1
		ORDER BY e.created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.CourseCode, &e.CourseName,
			&e.Credits, &e.Section, &e.Status, &e.Grade, &e.Semester,
			&e.AcademicYear, &e.Term, &e.CreatedAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// ActiveCourseIDs returns the course IDs a student is currently enrolled
// in for a term, used to reject duplicate registrations.
func (r *EnrollmentRepository) ActiveCourseIDs(ctx context.Context, studentID, academicYear int, term string) (map[int]bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT course_id FROM enrollments
		WHERE student_id = $1 AND academic_year = $2 AND term = $3 AND status = 'enrolled'`,
		studentID, academicYear, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := map[int]bool{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// Drop marks a student's enrollment as dropped. Returns ErrNotFound if
// the enrollment does not exist, does not belong to the student, or is
// not currently active.
func (r *EnrollmentRepository) Drop(ctx context.Context, studentID, enrollmentID int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE enrollments SET status = 'dropped'
		WHERE id = $1 AND student_id = $2 AND status = 'enrolled'`,
		enrollmentID, studentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// TranscriptRows returns the completed, graded enrollments that make up
// a student's transcript, in semester order.
func (r *EnrollmentRepository) TranscriptRows(ctx context.Context, studentID int) ([]model.TranscriptCourse, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.code, c.name, c.credits, e.grade, e.semester
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.student_id = $1 AND e.status = 'completed'
		  AND e.grade IS NOT NULL AND e.semester IS NOT NULL
		ORDER BY e.academic_year, e.term, c.code`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.TranscriptCourse
	for rows.Next() {
		var tc model.TranscriptCourse
		if err := rows.Scan(&tc.Code, &tc.Name, &tc.Credits, &tc.Grade, &tc.Semester); err != nil {
			return nil, err
		}
		tc.GradePoint = model.GradePoint(tc.Grade)
		courses = append(courses, tc)
	}
	return courses, rows.Err()
}
