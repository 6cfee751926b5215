package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/store"
	"github.com/stretchr/testify/require"
)

func TestCreateOrganization(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	owner := env.register(t, "owner@example.com")

	org, err := env.orgs.CreateOrganization(ctx, owner.ID, "Acme", "acme")
	require.NoError(t, err)
	require.Equal(t, "acme", org.Slug)
	require.False(t, org.CreatedAt.IsZero())
	require.Equal(t, 1, env.owners(t, org))

	t.Run("slug must be unique", func(t *testing.T) {
		_, err := env.orgs.CreateOrganization(ctx, owner.ID, "Other", "acme")
		require.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("slug is validated", func(t *testing.T) {
		for _, slug := range []string{"", "Acme", "acme corp", "a_b"} {
			_, err := env.orgs.CreateOrganization(ctx, owner.ID, "X", slug)
			require.ErrorIs(t, err, domain.ErrInvalid, slug)
		}
	})

	t.Run("listed for members only", func(t *testing.T) {
		outsider := env.register(t, "outsider@example.com")

		orgs, err := env.orgs.ListOrganizations(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, orgs, 1)

		orgs, err = env.orgs.ListOrganizations(ctx, outsider.ID)
		require.NoError(t, err)
		require.Empty(t, orgs)

		_, err = env.orgs.GetOrganization(ctx, org.ID, outsider.ID)
		require.ErrorIs(t, err, domain.ErrNotMember)

		_, err = env.orgs.GetOrganization(ctx, "missing", owner.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUpdateOrganization(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	owner := env.register(t, "owner@example.com")
	member := env.register(t, "member@example.com")
	org := env.createOrg(t, owner, "acme")
	env.join(t, org, owner, member, domain.RoleMember)

	_, err := env.orgs.UpdateOrganization(ctx, org.ID, member.ID, "Renamed")
	require.ErrorIs(t, err, domain.ErrInsufficientRole)

	updated, err := env.orgs.UpdateOrganization(ctx, org.ID, owner.ID, "Renamed")
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)

	members, err := env.orgs.ListMembers(ctx, org.ID, member.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
}

func TestUpdateRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	owner := env.register(t, "owner@example.com")
	admin := env.register(t, "admin@example.com")
	member := env.register(t, "member@example.com")
	org := env.createOrg(t, owner, "acme")
	env.join(t, org, owner, admin, domain.RoleAdmin)
	env.join(t, org, owner, member, domain.RoleMember)

	t.Run("self is always rejected", func(t *testing.T) {
		for _, u := range []domain.User{owner, admin, member} {
			_, err := env.orgs.UpdateRole(ctx, org.ID, u.ID, u.ID, domain.RoleMember)
			require.Error(t, err)
		}
		require.Equal(t, 1, env.owners(t, org))
	})

	t.Run("admin cannot touch the owner", func(t *testing.T) {
		_, err := env.orgs.UpdateRole(ctx, org.ID, admin.ID, owner.ID, domain.RoleMember)
		require.ErrorIs(t, err, domain.ErrInsufficientRole)
	})

	t.Run("admin cannot grant ownership", func(t *testing.T) {
		_, err := env.orgs.UpdateRole(ctx, org.ID, admin.ID, member.ID, domain.RoleOwner)
		require.ErrorIs(t, err, domain.ErrInsufficientRole)
	})

	t.Run("member cannot change roles", func(t *testing.T) {
		_, err := env.orgs.UpdateRole(ctx, org.ID, member.ID, admin.ID, domain.RoleMember)
		require.ErrorIs(t, err, domain.ErrInsufficientRole)
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := env.orgs.UpdateRole(ctx, org.ID, owner.ID, "missing", domain.RoleMember)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("owner promotes and demotes", func(t *testing.T) {
		m, err := env.orgs.UpdateRole(ctx, org.ID, owner.ID, member.ID, domain.RoleOwner)
		require.NoError(t, err)
		require.Equal(t, domain.RoleOwner, m.Role)
		require.Equal(t, 2, env.owners(t, org))

		m, err = env.orgs.UpdateRole(ctx, org.ID, owner.ID, member.ID, domain.RoleMember)
		require.NoError(t, err)
		require.Equal(t, domain.RoleMember, m.Role)
		require.Equal(t, 1, env.owners(t, org))
	})
}

func TestRemoveMember(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("sole owner cannot leave", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.register(t, "owner@example.com")
		org := env.createOrg(t, owner, "acme")

		err := env.orgs.RemoveMember(ctx, org.ID, owner.ID, owner.ID)
		require.ErrorIs(t, err, domain.ErrLastOwner)
		require.Equal(t, 1, env.owners(t, org))
	})

	t.Run("owner can leave when a co-owner exists", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.register(t, "owner@example.com")
		coOwner := env.register(t, "co@example.com")
		org := env.createOrg(t, owner, "acme")
		env.join(t, org, owner, coOwner, domain.RoleAdmin)
		env.promote(t, org, coOwner, domain.RoleOwner)

		require.NoError(t, env.orgs.RemoveMember(ctx, org.ID, owner.ID, owner.ID))
		require.Equal(t, 1, env.owners(t, org))

		_, err := env.store.Memberships().FindMembership(ctx, org.ID, owner.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("members leave, admins remove members but not owners", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.register(t, "owner@example.com")
		admin := env.register(t, "admin@example.com")
		m1 := env.register(t, "m1@example.com")
		m2 := env.register(t, "m2@example.com")
		org := env.createOrg(t, owner, "acme")
		env.join(t, org, owner, admin, domain.RoleAdmin)
		env.join(t, org, owner, m1, domain.RoleMember)
		env.join(t, org, owner, m2, domain.RoleMember)

		require.ErrorIs(t, env.orgs.RemoveMember(ctx, org.ID, m1.ID, m2.ID), domain.ErrInsufficientRole)
		require.ErrorIs(t, env.orgs.RemoveMember(ctx, org.ID, admin.ID, owner.ID), domain.ErrInsufficientRole)

		require.NoError(t, env.orgs.RemoveMember(ctx, org.ID, m1.ID, m1.ID))
		require.NoError(t, env.orgs.RemoveMember(ctx, org.ID, admin.ID, m2.ID))

		members, err := env.orgs.ListMembers(ctx, org.ID, owner.ID)
		require.NoError(t, err)
		require.Len(t, members, 2)
	})

	t.Run("team memberships go with the org membership", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.register(t, "owner@example.com")
		member := env.register(t, "member@example.com")
		org := env.createOrg(t, owner, "acme")
		env.join(t, org, owner, member, domain.RoleMember)

		team, err := env.teams.CreateTeam(ctx, org.ID, owner.ID, "Core", "")
		require.NoError(t, err)
		require.NoError(t, env.teams.AddTeamMember(ctx, team.ID, owner.ID, member.ID))

		require.NoError(t, env.orgs.RemoveMember(ctx, org.ID, owner.ID, member.ID))

		onTeam, err := env.store.Teams().IsTeamMember(ctx, team.ID, member.ID)
		require.NoError(t, err)
		require.False(t, onTeam)
	})
}

func TestDeleteOrganization(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	owner := env.register(t, "owner@example.com")
	admin := env.register(t, "admin@example.com")
	org := env.createOrg(t, owner, "acme")
	env.join(t, org, owner, admin, domain.RoleAdmin)

	_, err := env.tasks.CreateTask(ctx, org.ID, owner.ID, NewTask{Title: "ship it"})
	require.NoError(t, err)

	require.ErrorIs(t, env.orgs.DeleteOrganization(ctx, org.ID, admin.ID), domain.ErrInsufficientRole)

	require.NoError(t, env.orgs.DeleteOrganization(ctx, org.ID, owner.ID))

	_, err = env.store.Organizations().GetOrganizationByID(ctx, org.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	members, err := env.store.Memberships().ListMembers(ctx, org.ID)
	require.NoError(t, err)
	require.Empty(t, members)

	tasks, err := env.store.Tasks().ListTasks(ctx, org.ID)
	require.NoError(t, err)
	require.Empty(t, tasks)
}

func TestDeleteOrganizationRollsBackOnFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestEnv(t)

	owner := env.register(t, "owner@example.com")
	admin := env.register(t, "admin@example.com")
	org := env.createOrg(t, owner, "acme")
	env.join(t, org, owner, admin, domain.RoleAdmin)

	failing := &OrganizationService{
		Store: &faultStore{Store: env.store, deleteOrganization: errInjected},
		Authz: env.authz,
	}
	err := failing.DeleteOrganization(ctx, org.ID, owner.ID)
	require.ErrorIs(t, err, domain.ErrStoreFailure)
	require.ErrorIs(t, err, errInjected)

	// Neither the organization nor any membership is gone.
	_, err = env.store.Organizations().GetOrganizationByID(ctx, org.ID)
	require.NoError(t, err)

	members, err := env.store.Memberships().ListMembers(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, 1, env.owners(t, org))

	require.NoError(t, env.orgs.DeleteOrganization(ctx, org.ID, owner.ID))
}
