package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/store"
	"github.com/aussiebroadwan/orgflow/pkg/idx"
	"github.com/aussiebroadwan/orgflow/pkg/slogx"
)

type OrganizationService struct {
	Store store.Store
	Authz *Authorizer
}

// CreateOrganization creates the organization and the creator's OWNER
// membership in one transaction.
func (s *OrganizationService) CreateOrganization(ctx context.Context, ownerID, name, slug string) (domain.Organization, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Organization{}, domain.Errorf(domain.ErrInvalid, "name is required")
	}
	if !domain.ValidSlug(slug) {
		return domain.Organization{}, domain.Errorf(domain.ErrInvalid, "slug %q must be lowercase letters, digits and hyphens", slug)
	}

	org := domain.Organization{
		ID:      idx.New().String(),
		Name:    name,
		Slug:    slug,
		OwnerID: ownerID,
	}

	// 2. Organization and owner membership together
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().CreateOrganization(ctx, org); err != nil {
			return writeErr(err, "slug "+slug+" is taken", nil)
		}
		if err := tx.Memberships().CreateMembership(ctx, domain.Membership{
			OrganizationID: org.ID,
			UserID:         ownerID,
			Role:           domain.RoleOwner,
		}); err != nil {
			return writeErr(err, "create owner membership", nil)
		}

		created, err := tx.Organizations().GetOrganizationByID(ctx, org.ID)
		if err != nil {
			return lookupErr(err, "organization")
		}
		org = created
		return nil
	})
	if err != nil {
		if domain.KindOf(err) != domain.KindConflict {
			log.Error("failed to create organization", slog.String("slug", slug), slog.Any("error", err))
		}
		return domain.Organization{}, passthrough(err, "create organization")
	}

	log.Info("organization created",
		slog.String("org_id", org.ID),
		slog.String("slug", org.Slug),
		slog.String("owner_id", ownerID),
	)
	return org, nil
}

// ListOrganizations returns the organizations the user belongs to.
func (s *OrganizationService) ListOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	orgs, err := s.Store.Organizations().ListOrganizationsForUser(ctx, userID)
	if err != nil {
		return nil, domain.StoreError("list organizations", err)
	}
	return orgs, nil
}

func (s *OrganizationService) GetOrganization(ctx context.Context, orgID, userID string) (domain.Organization, error) {
	org, err := s.Store.Organizations().GetOrganizationByID(ctx, orgID)
	if err != nil {
		return domain.Organization{}, lookupErr(err, "organization")
	}
	if _, err := s.Authz.Authorize(ctx, userID, orgID, domain.AnyMember); err != nil {
		return domain.Organization{}, err
	}
	return org, nil
}

func (s *OrganizationService) UpdateOrganization(ctx context.Context, orgID, userID, name string) (domain.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Organization{}, domain.Errorf(domain.ErrInvalid, "name is required")
	}
	if _, err := s.Authz.Authorize(ctx, userID, orgID, domain.Managers); err != nil {
		return domain.Organization{}, err
	}

	orgs := s.Store.Organizations()
	if err := orgs.UpdateOrganizationName(ctx, orgID, name); err != nil {
		return domain.Organization{}, writeErr(err, "update organization", nil)
	}
	org, err := orgs.GetOrganizationByID(ctx, orgID)
	if err != nil {
		return domain.Organization{}, lookupErr(err, "organization")
	}
	return org, nil
}

func (s *OrganizationService) ListMembers(ctx context.Context, orgID, userID string) ([]domain.Member, error) {
	if _, err := s.Authz.Authorize(ctx, userID, orgID, domain.AnyMember); err != nil {
		return nil, err
	}
	members, err := s.Store.Memberships().ListMembers(ctx, orgID)
	if err != nil {
		return nil, domain.StoreError("list members", err)
	}
	return members, nil
}

// UpdateRole changes another member's role.
func (s *OrganizationService) UpdateRole(ctx context.Context, orgID, callerID, targetID string, role domain.Role) (domain.Membership, error) {
	log := slogx.FromContext(ctx)

	var updated domain.Membership
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Caller must be a manager
		caller, err := s.Authz.AuthorizeTx(ctx, tx, callerID, orgID, domain.Managers)
		if err != nil {
			return err
		}

		// 2. Resolve target and apply the guards
		target, err := tx.Memberships().FindMembership(ctx, orgID, targetID)
		if err != nil {
			return lookupErr(err, "member")
		}
		if err := CheckRoleChange(caller, target, role); err != nil {
			return err
		}
		if role != domain.RoleOwner {
			owners, err := tx.Memberships().CountOwners(ctx, orgID)
			if err != nil {
				return domain.StoreError("count owners", err)
			}
			if err := CheckOwnerRetained(target, owners); err != nil {
				return err
			}
		}

		// 3. Write
		if err := tx.Memberships().UpdateMembershipRole(ctx, orgID, targetID, role); err != nil {
			return writeErr(err, "update membership role", nil)
		}
		updated, err = tx.Memberships().FindMembership(ctx, orgID, targetID)
		if err != nil {
			return lookupErr(err, "member")
		}
		return nil
	})
	if err != nil {
		log.Warn("role change rejected",
			slog.String("org_id", orgID),
			slog.String("caller_id", callerID),
			slog.String("target_id", targetID),
			slog.String("role", string(role)),
			slog.Any("error", err),
		)
		return domain.Membership{}, passthrough(err, "update role")
	}

	log.Info("member role changed",
		slog.String("org_id", orgID),
		slog.String("target_id", targetID),
		slog.String("role", string(role)),
	)
	return updated, nil
}

// RemoveMember removes target from the organization along with their team
// memberships. A member may always leave unless they are the last owner.
func (s *OrganizationService) RemoveMember(ctx context.Context, orgID, callerID, targetID string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Caller must belong to the organization
		caller, err := s.Authz.AuthorizeTx(ctx, tx, callerID, orgID, domain.AnyMember)
		if err != nil {
			return err
		}

		// 2. Resolve target and apply the guards
		target, err := tx.Memberships().FindMembership(ctx, orgID, targetID)
		if err != nil {
			return lookupErr(err, "member")
		}
		if err := CheckRemoval(caller, target); err != nil {
			return err
		}
		owners, err := tx.Memberships().CountOwners(ctx, orgID)
		if err != nil {
			return domain.StoreError("count owners", err)
		}
		if err := CheckOwnerRetained(target, owners); err != nil {
			return err
		}

		// 3. Team memberships, then the organization membership
		if err := tx.Teams().RemoveUserFromOrganizationTeams(ctx, orgID, targetID); err != nil {
			return domain.StoreError("remove team memberships", err)
		}
		if err := tx.Memberships().DeleteMembership(ctx, orgID, targetID); err != nil {
			return writeErr(err, "delete membership", nil)
		}
		return nil
	})
	if err != nil {
		log.Warn("member removal rejected",
			slog.String("org_id", orgID),
			slog.String("caller_id", callerID),
			slog.String("target_id", targetID),
			slog.Any("error", err),
		)
		return passthrough(err, "remove member")
	}

	log.Info("member removed",
		slog.String("org_id", orgID),
		slog.String("target_id", targetID),
		slog.Bool("self", callerID == targetID),
	)
	return nil
}

// DeleteOrganization removes every membership and then the organization in a
// single transaction. Only owners may do this.
func (s *OrganizationService) DeleteOrganization(ctx context.Context, orgID, callerID string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := s.Authz.AuthorizeTx(ctx, tx, callerID, orgID, domain.OwnerOnly); err != nil {
			return err
		}
		if err := tx.Memberships().DeleteMembershipsByOrganization(ctx, orgID); err != nil {
			return domain.StoreError("delete memberships", err)
		}
		if err := tx.Organizations().DeleteOrganization(ctx, orgID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Errorf(domain.ErrNotFound, "organization not found")
			}
			return domain.StoreError("delete organization", err)
		}
		return nil
	})
	if err != nil {
		return passthrough(err, "delete organization")
	}

	log.Info("organization deleted", slog.String("org_id", orgID), slog.String("caller_id", callerID))
	return nil
}
