package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/live"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/metrics"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/store"
	"github.com/aussiebroadwan/orgflow/pkg/idx"
	"github.com/aussiebroadwan/orgflow/pkg/slogx"
)

// Publisher pushes a persisted notification to live connections.
type Publisher interface {
	Dispatch(ctx context.Context, n domain.Notification) live.Result
}

// NewNotification is the input to Emit.
type NewNotification struct {
	UserID         string
	OrganizationID string
	Type           domain.NotificationType
	EntityID       *string
	Message        string
}

// NotificationService persists notifications and hands them to the live
// dispatcher once they are durable.
type NotificationService struct {
	Store     store.Store
	Authz     *Authorizer
	Publisher Publisher
	Metrics   *metrics.Metrics

	// Now defaults to time.Now when nil.
	Now func() time.Time
}

func (s *NotificationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Emit persists a notification and then dispatches it. A persistence failure
// is returned; delivery failures never are.
func (s *NotificationService) Emit(ctx context.Context, in NewNotification) (domain.Notification, error) {
	n, err := s.persist(ctx, s.Store.Notifications(), in)
	if err != nil {
		return domain.Notification{}, err
	}
	s.Publish(ctx, n)
	return n, nil
}

// EmitTx persists a notification inside tx without dispatching it. The caller
// publishes after the transaction commits.
func (s *NotificationService) EmitTx(ctx context.Context, tx store.Tx, in NewNotification) (domain.Notification, error) {
	return s.persist(ctx, tx.Notifications(), in)
}

func (s *NotificationService) persist(ctx context.Context, repo store.Notifications, in NewNotification) (domain.Notification, error) {
	n := domain.Notification{
		ID:             idx.New().String(),
		UserID:         in.UserID,
		OrganizationID: in.OrganizationID,
		Type:           in.Type,
		EntityID:       in.EntityID,
		Message:        in.Message,
		CreatedAt:      s.now(),
	}

	if err := repo.CreateNotification(ctx, n); err != nil {
		slogx.FromContext(ctx).Error("failed to persist notification",
			slog.String("user_id", n.UserID),
			slog.String("type", string(n.Type)),
			slog.Any("error", err),
		)
		return domain.Notification{}, domain.StoreError("create notification", err)
	}

	s.Metrics.NotificationEmitted(string(n.Type))
	return n, nil
}

// Publish dispatches an already persisted notification.
func (s *NotificationService) Publish(ctx context.Context, n domain.Notification) {
	if s.Publisher == nil {
		return
	}
	res := s.Publisher.Dispatch(ctx, n)
	slogx.FromContext(ctx).Debug("notification dispatched",
		slog.String("notification_id", n.ID),
		slog.Int("delivered", res.Delivered),
		slog.Int("failed", res.Failed),
	)
}

// List returns the caller's notifications in the organization, newest first.
func (s *NotificationService) List(ctx context.Context, orgID, callerID string, unreadOnly bool) ([]domain.Notification, error) {
	if _, err := s.Authz.Authorize(ctx, callerID, orgID, domain.AnyMember); err != nil {
		return nil, err
	}
	list, err := s.Store.Notifications().ListNotifications(ctx, callerID, orgID, unreadOnly)
	if err != nil {
		return nil, domain.StoreError("list notifications", err)
	}
	return list, nil
}

// MarkRead marks one of the caller's notifications read. Marking an already
// read notification is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, id, callerID string) (domain.Notification, error) {
	repo := s.Store.Notifications()

	n, err := repo.GetNotificationByID(ctx, id)
	if err != nil {
		return domain.Notification{}, lookupErr(err, "notification")
	}
	if n.UserID != callerID {
		slogx.FromContext(ctx).Warn("attempted to mark another user's notification",
			slog.String("notification_id", id),
			slog.String("user_id", callerID),
		)
		return domain.Notification{}, domain.Errorf(domain.ErrForbidden, "notification belongs to another user")
	}
	if n.IsRead() {
		return n, nil
	}

	if err := repo.MarkNotificationRead(ctx, id, s.now()); err != nil {
		return domain.Notification{}, domain.StoreError("mark notification read", err)
	}

	n, err = repo.GetNotificationByID(ctx, id)
	if err != nil {
		return domain.Notification{}, lookupErr(err, "notification")
	}
	return n, nil
}

// MarkAllRead marks every unread notification the caller has in the
// organization and returns how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, orgID, callerID string) (int64, error) {
	if _, err := s.Authz.Authorize(ctx, callerID, orgID, domain.AnyMember); err != nil {
		return 0, err
	}
	n, err := s.Store.Notifications().MarkAllNotificationsRead(ctx, callerID, orgID, s.now())
	if err != nil {
		return 0, domain.StoreError("mark all notifications read", err)
	}
	return n, nil
}
