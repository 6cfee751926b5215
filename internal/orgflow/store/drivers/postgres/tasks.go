package postgres

import (
	"context"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"

	"github.com/jackc/pgx/v5"
)

type tasksRepo struct {
	db querier
}

const taskColumns = `id, organization_id, team_id, title, description, status, priority, due_date, created_by, created_at, updated_at`

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	ts := now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.OrganizationID, optionalString(t.TeamID), t.Title, t.Description,
		string(t.Status), string(t.Priority), utcPtr(t.DueDate), t.CreatedBy, ts, ts,
	)
	return mapConstraint(err)
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tasksRepo) ListTasks(ctx context.Context, orgID string) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE organization_id = $1 ORDER BY created_at DESC, id DESC`, orgID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Task, error) {
		return scanTask(row)
	})
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	return requireAffected(r.db.Exec(ctx,
		`UPDATE tasks
		 SET team_id = $1, title = $2, description = $3, status = $4, priority = $5, due_date = $6, updated_at = $7
		 WHERE id = $8`,
		optionalString(t.TeamID), t.Title, t.Description, string(t.Status), string(t.Priority),
		utcPtr(t.DueDate), now(), t.ID))
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	return requireAffected(r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id))
}

func (r *tasksRepo) AddAssignee(ctx context.Context, taskID, userID string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO task_assignees (task_id, user_id, created_at) VALUES ($1, $2, $3)`,
		taskID, userID, now())
	return mapConstraint(err)
}

func (r *tasksRepo) IsAssignee(ctx context.Context, taskID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM task_assignees WHERE task_id = $1 AND user_id = $2)`,
		taskID, userID).Scan(&exists)
	return exists, err
}

func (r *tasksRepo) ListAssignees(ctx context.Context, taskID string) ([]domain.TaskAssignee, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ta.task_id, ta.user_id, u.email, u.name, ta.created_at
		 FROM task_assignees ta
		 JOIN users u ON u.id = ta.user_id
		 WHERE ta.task_id = $1
		 ORDER BY ta.created_at, ta.user_id`, taskID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TaskAssignee, error) {
		var a domain.TaskAssignee
		err := row.Scan(&a.TaskID, &a.UserID, &a.Email, &a.Name, &a.CreatedAt)
		return a, err
	})
}

func (r *tasksRepo) RemoveAssignee(ctx context.Context, taskID, userID string) error {
	return requireAffected(r.db.Exec(ctx,
		`DELETE FROM task_assignees WHERE task_id = $1 AND user_id = $2`, taskID, userID))
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var (
		t      domain.Task
		teamID *string
	)
	err := row.Scan(
		&t.ID, &t.OrganizationID, &teamID, &t.Title, &t.Description,
		&t.Status, &t.Priority, &t.DueDate, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	t.TeamID = derefString(teamID)
	t.DueDate = utcPtr(t.DueDate)
	return t, err
}
