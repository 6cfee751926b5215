package sqlite

import (
	"context"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
)

type commentsRepo struct {
	db dbtx
}

const commentSelect = `SELECT c.id, c.task_id, c.user_id, c.content, c.created_at, c.updated_at, u.email, u.name
	FROM comments c
	JOIN users u ON u.id = c.user_id`

func (r *commentsRepo) CreateComment(ctx context.Context, c domain.Comment) error {
	ts := now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, task_id, user_id, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.TaskID, c.UserID, c.Content, ts, ts)
	return mapConstraint(err)
}

func (r *commentsRepo) GetCommentByID(ctx context.Context, id string) (domain.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx, commentSelect+` WHERE c.id = ?`, id))
	if err != nil {
		return domain.Comment{}, mapNotFound(err)
	}
	return c, nil
}

func (r *commentsRepo) ListComments(ctx context.Context, taskID string) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		commentSelect+` WHERE c.task_id = ? ORDER BY c.created_at DESC, c.id DESC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *commentsRepo) UpdateCommentContent(ctx context.Context, id, content string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`, content, now(), id))
}

func (r *commentsRepo) DeleteComment(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id))
}

func scanComment(row interface{ Scan(...any) error }) (domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(&c.ID, &c.TaskID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt, &c.AuthorEmail, &c.AuthorName)
	return c, err
}
