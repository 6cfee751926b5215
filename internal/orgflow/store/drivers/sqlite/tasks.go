package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
)

type tasksRepo struct {
	db dbtx
}

const taskColumns = `id, organization_id, team_id, title, description, status, priority, due_date, created_by, created_at, updated_at`

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	ts := now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OrganizationID, mapStringNull(t.TeamID), t.Title, t.Description,
		string(t.Status), string(t.Priority), mapOptionalTime(t.DueDate), t.CreatedBy, ts, ts,
	)
	return mapConstraint(err)
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tasksRepo) ListTasks(ctx context.Context, orgID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE organization_id = ? ORDER BY created_at DESC, id DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET team_id = ?, title = ?, description = ?, status = ?, priority = ?, due_date = ?, updated_at = ?
		 WHERE id = ?`,
		mapStringNull(t.TeamID), t.Title, t.Description, string(t.Status), string(t.Priority),
		mapOptionalTime(t.DueDate), now(), t.ID))
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id))
}

func (r *tasksRepo) AddAssignee(ctx context.Context, taskID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO task_assignees (task_id, user_id, created_at) VALUES (?, ?, ?)`,
		taskID, userID, now())
	return mapConstraint(err)
}

func (r *tasksRepo) IsAssignee(ctx context.Context, taskID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM task_assignees WHERE task_id = ? AND user_id = ?)`,
		taskID, userID).Scan(&exists)
	return exists, err
}

func (r *tasksRepo) ListAssignees(ctx context.Context, taskID string) ([]domain.TaskAssignee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ta.task_id, ta.user_id, u.email, u.name, ta.created_at
		 FROM task_assignees ta
		 JOIN users u ON u.id = ta.user_id
		 WHERE ta.task_id = ?
		 ORDER BY ta.created_at, ta.user_id`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TaskAssignee
	for rows.Next() {
		var a domain.TaskAssignee
		if err := rows.Scan(&a.TaskID, &a.UserID, &a.Email, &a.Name, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *tasksRepo) RemoveAssignee(ctx context.Context, taskID, userID string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`DELETE FROM task_assignees WHERE task_id = ? AND user_id = ?`, taskID, userID))
}

func scanTask(row interface{ Scan(...any) error }) (domain.Task, error) {
	var (
		t      domain.Task
		teamID sql.NullString
		due    sql.NullTime
	)
	if err := row.Scan(
		&t.ID, &t.OrganizationID, &teamID, &t.Title, &t.Description,
		&t.Status, &t.Priority, &due, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return domain.Task{}, err
	}
	t.TeamID = mapNullString(teamID)
	t.DueDate = mapNullTimePtr(due)
	return t, nil
}
