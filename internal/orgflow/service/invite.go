package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/store"
	"github.com/aussiebroadwan/orgflow/pkg/cryptox"
	"github.com/aussiebroadwan/orgflow/pkg/idx"
	"github.com/aussiebroadwan/orgflow/pkg/slogx"
)

// DefaultInviteTTL is how long an issued invite stays acceptable.
const DefaultInviteTTL = 7 * 24 * time.Hour

// InviteService issues and redeems organization invites. Raw tokens are only
// ever returned to the inviter; the store keeps their fingerprint.
type InviteService struct {
	Store         store.Store
	Authz         *Authorizer
	Notifications *NotificationService

	// TTL defaults to DefaultInviteTTL when zero.
	TTL time.Duration

	// Now defaults to time.Now when nil.
	Now func() time.Time
}

func (s *InviteService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *InviteService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultInviteTTL
}

// Invite issues a token inviting email into the organization with role.
// Re-inviting the same email rotates the token and expiry of the existing
// invite.
func (s *InviteService) Invite(ctx context.Context, orgID, inviterID, email string, role domain.Role) (domain.Invite, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input. Ownership is never granted by invite.
	if !validEmail(email) {
		return domain.Invite{}, "", domain.Errorf(domain.ErrInvalid, "invalid email %q", email)
	}
	if role != domain.RoleAdmin && role != domain.RoleMember {
		return domain.Invite{}, "", domain.Errorf(domain.ErrInvalid, "invite role must be ADMIN or MEMBER, got %q", role)
	}

	// 2. Inviter must be a manager
	if _, err := s.Authz.Authorize(ctx, inviterID, orgID, domain.Managers); err != nil {
		log.Warn("invite rejected",
			slog.String("org_id", orgID),
			slog.String("inviter_id", inviterID),
			slog.Any("error", err),
		)
		return domain.Invite{}, "", err
	}

	// 3. Reject emails that already hold a membership
	_, err := s.Store.Memberships().FindMembershipByEmail(ctx, orgID, email)
	switch {
	case err == nil:
		return domain.Invite{}, "", domain.Errorf(domain.ErrAlreadyMember, "%s is already a member", email)
	case !errors.Is(err, store.ErrNotFound):
		return domain.Invite{}, "", domain.StoreError("find membership by email", err)
	}

	// 4. Mint the token; only the fingerprint is stored
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invite token", slog.Any("error", err))
		return domain.Invite{}, "", fmt.Errorf("generate invite token: %w", err)
	}

	now := s.now()
	inv, err := s.Store.Invites().UpsertInvite(ctx, domain.Invite{
		ID:             idx.New().String(),
		Email:          email,
		OrganizationID: orgID,
		Role:           role,
		TokenHash:      cryptox.FingerprintToken(token),
		CreatedBy:      inviterID,
		ExpiresAt:      now.Add(s.ttl()),
	})
	if err != nil {
		log.Error("failed to store invite", slog.String("org_id", orgID), slog.Any("error", err))
		return domain.Invite{}, "", domain.StoreError("upsert invite", err)
	}

	log.Info("invite issued",
		slog.String("invite_id", inv.ID),
		slog.String("org_id", orgID),
		slog.String("role", string(role)),
		slog.Time("expires_at", inv.ExpiresAt),
	)
	return inv, token, nil
}

// Accept redeems token for userID. The membership is created and the invite
// deleted in one transaction, so a token can never be replayed.
func (s *InviteService) Accept(ctx context.Context, userID, token string) (domain.Membership, error) {
	log := slogx.FromContext(ctx)
	hash := cryptox.FingerprintToken(token)

	var (
		membership domain.Membership
		accepted   domain.Notification
		notify     bool
	)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Resolve the invite
		inv, err := tx.Invites().GetInviteByTokenHash(ctx, hash)
		if err != nil {
			return lookupErr(err, "invite")
		}
		if inv.Expired(s.now()) {
			return domain.Errorf(domain.ErrExpired, "invite %s expired at %s", inv.ID, inv.ExpiresAt.Format(time.RFC3339))
		}

		// 2. The invite is bound to an exact email address
		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return lookupErr(err, "user")
		}
		if user.Email != inv.Email {
			return domain.ErrEmailMismatch
		}

		// 3. Membership and invite deletion commit together
		if err := tx.Memberships().CreateMembership(ctx, domain.Membership{
			OrganizationID: inv.OrganizationID,
			UserID:         userID,
			Role:           inv.Role,
		}); err != nil {
			return writeErr(err, "user is already a member", domain.ErrAlreadyMember)
		}
		if err := tx.Invites().DeleteInvite(ctx, inv.ID); err != nil {
			return writeErr(err, "invite already redeemed", nil)
		}

		membership, err = tx.Memberships().FindMembership(ctx, inv.OrganizationID, userID)
		if err != nil {
			return lookupErr(err, "member")
		}

		// 4. Tell the inviter, durably, in the same transaction
		if s.Notifications != nil && inv.CreatedBy != "" && inv.CreatedBy != userID {
			accepted, err = s.Notifications.EmitTx(ctx, tx, NewNotification{
				UserID:         inv.CreatedBy,
				OrganizationID: inv.OrganizationID,
				Type:           domain.NotificationInviteAccepted,
				EntityID:       &userID,
				Message:        fmt.Sprintf("%s accepted your invitation", user.Email),
			})
			if err != nil {
				return err
			}
			notify = true
		}
		return nil
	})
	if err != nil {
		log.Warn("invite acceptance failed", slog.String("user_id", userID), slog.Any("error", err))
		return domain.Membership{}, passthrough(err, "accept invite")
	}

	if notify {
		s.Notifications.Publish(ctx, accepted)
	}

	log.Info("invite accepted",
		slog.String("org_id", membership.OrganizationID),
		slog.String("user_id", userID),
		slog.String("role", string(membership.Role)),
	)
	return membership, nil
}
