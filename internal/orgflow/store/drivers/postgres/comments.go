package postgres

import (
	"context"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"

	"github.com/jackc/pgx/v5"
)

type commentsRepo struct {
	db querier
}

const commentSelect = `SELECT c.id, c.task_id, c.user_id, c.content, c.created_at, c.updated_at, u.email, u.name
	FROM comments c
	JOIN users u ON u.id = c.user_id`

func (r *commentsRepo) CreateComment(ctx context.Context, c domain.Comment) error {
	ts := now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO comments (id, task_id, user_id, content, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.TaskID, c.UserID, c.Content, ts, ts)
	return mapConstraint(err)
}

func (r *commentsRepo) GetCommentByID(ctx context.Context, id string) (domain.Comment, error) {
	c, err := scanComment(r.db.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return domain.Comment{}, mapNotFound(err)
	}
	return c, nil
}

func (r *commentsRepo) ListComments(ctx context.Context, taskID string) ([]domain.Comment, error) {
	rows, err := r.db.Query(ctx,
		commentSelect+` WHERE c.task_id = $1 ORDER BY c.created_at DESC, c.id DESC`, taskID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Comment, error) {
		return scanComment(row)
	})
}

func (r *commentsRepo) UpdateCommentContent(ctx context.Context, id, content string) error {
	return requireAffected(r.db.Exec(ctx,
		`UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3`, content, now(), id))
}

func (r *commentsRepo) DeleteComment(ctx context.Context, id string) error {
	return requireAffected(r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id))
}

func scanComment(row pgx.Row) (domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(&c.ID, &c.TaskID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt, &c.AuthorEmail, &c.AuthorName)
	return c, err
}
