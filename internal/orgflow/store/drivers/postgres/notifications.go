package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"

	"github.com/jackc/pgx/v5"
)

type notificationsRepo struct {
	db querier
}

const notificationColumns = `id, user_id, organization_id, type, entity_id, message, read_at, created_at`

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO notifications (`+notificationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.UserID, n.OrganizationID, string(n.Type), n.EntityID,
		n.Message, utcPtr(n.ReadAt), n.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *notificationsRepo) GetNotificationByID(ctx context.Context, id string) (domain.Notification, error) {
	n, err := scanNotification(r.db.QueryRow(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		return domain.Notification{}, mapNotFound(err)
	}
	return n, nil
}

func (r *notificationsRepo) ListNotifications(ctx context.Context, userID, orgID string, unreadOnly bool) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE user_id = $1 AND organization_id = $2 AND (NOT $3 OR read_at IS NULL)
		 ORDER BY created_at DESC, id DESC`, userID, orgID, unreadOnly)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Notification, error) {
		return scanNotification(row)
	})
}

func (r *notificationsRepo) MarkNotificationRead(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET read_at = $1 WHERE id = $2 AND read_at IS NULL`, at.UTC(), id)
	return err
}

func (r *notificationsRepo) MarkAllNotificationsRead(ctx context.Context, userID, orgID string, at time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET read_at = $1
		 WHERE user_id = $2 AND organization_id = $3 AND read_at IS NULL`,
		at.UTC(), userID, orgID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanNotification(row pgx.Row) (domain.Notification, error) {
	var n domain.Notification
	err := row.Scan(
		&n.ID, &n.UserID, &n.OrganizationID, &n.Type, &n.EntityID,
		&n.Message, &n.ReadAt, &n.CreatedAt,
	)
	n.ReadAt = utcPtr(n.ReadAt)
	n.CreatedAt = n.CreatedAt.UTC()
	return n, err
}
