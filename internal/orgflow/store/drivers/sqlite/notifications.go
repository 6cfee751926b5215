package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
)

type notificationsRepo struct {
	db dbtx
}

const notificationColumns = `id, user_id, organization_id, type, entity_id, message, read_at, created_at`

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (`+notificationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.OrganizationID, string(n.Type), mapOptionalString(n.EntityID),
		n.Message, mapOptionalTime(n.ReadAt), n.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *notificationsRepo) GetNotificationByID(ctx context.Context, id string) (domain.Notification, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id)
	n, err := scanNotification(row)
	if err != nil {
		return domain.Notification{}, mapNotFound(err)
	}
	return n, nil
}

func (r *notificationsRepo) ListNotifications(ctx context.Context, userID, orgID string, unreadOnly bool) ([]domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = ? AND organization_id = ?`
	if unreadOnly {
		query += ` AND read_at IS NULL`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationsRepo) MarkNotificationRead(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read_at = ? WHERE id = ? AND read_at IS NULL`, at.UTC(), id)
	return err
}

func (r *notificationsRepo) MarkAllNotificationsRead(ctx context.Context, userID, orgID string, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read_at = ?
		 WHERE user_id = ? AND organization_id = ? AND read_at IS NULL`,
		at.UTC(), userID, orgID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanNotification(row interface{ Scan(...any) error }) (domain.Notification, error) {
	var (
		n        domain.Notification
		entityID sql.NullString
		readAt   sql.NullTime
	)
	if err := row.Scan(
		&n.ID, &n.UserID, &n.OrganizationID, &n.Type, &entityID,
		&n.Message, &readAt, &n.CreatedAt,
	); err != nil {
		return domain.Notification{}, err
	}
	n.EntityID = mapNullStringPtr(entityID)
	n.ReadAt = mapNullTimePtr(readAt)
	n.CreatedAt = n.CreatedAt.UTC()
	return n, nil
}
