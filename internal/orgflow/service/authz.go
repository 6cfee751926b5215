package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/metrics"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/store"
	"github.com/aussiebroadwan/orgflow/pkg/slogx"
)

// Authorizer resolves an actor's membership in an organization and checks it
// against the exact role set a call site permits. It has no side effects
// beyond logging and metrics.
type Authorizer struct {
	Store   store.Store
	Metrics *metrics.Metrics
}

// Authorize returns the actor's membership when its role is in allowed.
func (a *Authorizer) Authorize(ctx context.Context, actorID, orgID string, allowed domain.RoleSet) (domain.Membership, error) {
	return a.authorize(ctx, a.Store.Memberships(), actorID, orgID, allowed)
}

// AuthorizeTx is Authorize evaluated inside tx, so the decision and the
// mutation it guards observe the same snapshot.
func (a *Authorizer) AuthorizeTx(ctx context.Context, tx store.Tx, actorID, orgID string, allowed domain.RoleSet) (domain.Membership, error) {
	return a.authorize(ctx, tx.Memberships(), actorID, orgID, allowed)
}

func (a *Authorizer) authorize(
	ctx context.Context,
	memberships store.Memberships,
	actorID, orgID string,
	allowed domain.RoleSet,
) (domain.Membership, error) {
	m, err := memberships.FindMembership(ctx, orgID, actorID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return domain.Membership{}, domain.StoreError("find membership", err)
	}

	var found *domain.Membership
	if err == nil {
		found = &m
	}

	if err := Decide(found, allowed); err != nil {
		a.Metrics.AuthzDecision(string(domain.KindOf(err)))
		slogx.FromContext(ctx).Debug("authorization denied",
			slog.String("user_id", actorID),
			slog.String("org_id", orgID),
			slog.Any("allowed", allowed.Strings()),
			slog.String("reason", string(domain.KindOf(err))),
		)
		return domain.Membership{}, err
	}

	a.Metrics.AuthzDecision("allowed")
	return m, nil
}

// Decide is the pure authorization decision. A nil membership means the actor
// does not belong to the organization.
func Decide(m *domain.Membership, allowed domain.RoleSet) error {
	if m == nil {
		return domain.ErrNotMember
	}
	if !allowed.Contains(m.Role) {
		return domain.Errorf(domain.ErrInsufficientRole, "role %s not in %v", m.Role, allowed.Strings())
	}
	return nil
}
