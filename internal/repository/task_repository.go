package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unifylabs/unify-backend/internal/model"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, t *model.Task) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO tasks (student_id, title, due_at, priority, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		t.StudentID, t.Title, t.DueAt, string(t.Priority), string(t.Status)).
		Scan(&t.ID, &t.CreatedAt)
}

func (r *TaskRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, student_id, title, due_at, priority, status, created_at
		FROM tasks
		WHERE student_id = $1
		ORDER BY status ASC, due_at ASC NULLS LAST, created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.StudentID, &t.Title, &t.DueAt, &t.Priority, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, studentID, taskID int, status model.TaskStatus) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tasks SET status = $1 WHERE id = $2 AND student_id = $3`,
		string(status), taskID, studentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, studentID, taskID int) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM tasks WHERE id = $1 AND student_id = $2`, taskID, studentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DueWithin returns pending tasks due inside the window that have not
// had a deadline reminder sent yet, and marks them as reminded in the
// same transaction so concurrent worker runs cannot double-notify.
func (r *TaskRepository) DueWithin(ctx context.Context, window time.Duration) ([]model.Task, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		UPDATE tasks SET reminded_at = NOW()
		WHERE status = 'pending' AND reminded_at IS NULL
		  AND due_at IS NOT NULL AND due_at BETWEEN NOW() AND NOW() + $1
		RETURNING id, student_id, title, due_at, priority, status, created_at`,
		window)
	if err != nil {
		return nil, err
	}

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.StudentID, &t.Title, &t.DueAt, &t.Priority, &t.Status, &t.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		tasks = append(tasks, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, tx.Commit(ctx)
}

// StudentUserID maps a student ID to its owning user account, needed
// when a task event must notify the user-level feed.
func (r *TaskRepository) StudentUserID(ctx context.Context, studentID int) (int, error) {
	var userID int
	err := r.pool.QueryRow(ctx,
		`SELECT user_id FROM students WHERE id = $1`, studentID).Scan(&userID)
	return userID, err
}
