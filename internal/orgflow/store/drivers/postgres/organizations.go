package postgres

import (
	"context"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"

	"github.com/jackc/pgx/v5"
)

type organizationsRepo struct {
	db querier
}

const organizationColumns = `o.id, o.name, o.slug, o.owner_id, o.created_at, o.updated_at`

func (r *organizationsRepo) CreateOrganization(ctx context.Context, o domain.Organization) error {
	ts := now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO organizations (id, name, slug, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.Name, o.Slug, o.OwnerID, ts, ts,
	)
	return mapConstraint(err)
}

func (r *organizationsRepo) GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error) {
	var o domain.Organization
	err := r.db.QueryRow(ctx, `SELECT `+organizationColumns+` FROM organizations o WHERE o.id = $1`, id).
		Scan(&o.ID, &o.Name, &o.Slug, &o.OwnerID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	return o, nil
}

func (r *organizationsRepo) ListOrganizationsForUser(ctx context.Context, userID string) ([]domain.Organization, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+organizationColumns+`
		 FROM organizations o
		 JOIN organization_members m ON m.organization_id = o.id
		 WHERE m.user_id = $1
		 ORDER BY o.created_at, o.id`, userID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Organization, error) {
		var o domain.Organization
		err := row.Scan(&o.ID, &o.Name, &o.Slug, &o.OwnerID, &o.CreatedAt, &o.UpdatedAt)
		return o, err
	})
}

func (r *organizationsRepo) UpdateOrganizationName(ctx context.Context, id, name string) error {
	return requireAffected(r.db.Exec(ctx,
		`UPDATE organizations SET name = $1, updated_at = $2 WHERE id = $3`, name, now(), id))
}

func (r *organizationsRepo) DeleteOrganization(ctx context.Context, id string) error {
	return requireAffected(r.db.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id))
}

type membershipsRepo struct {
	db querier
}

const membershipColumns = `m.organization_id, m.user_id, m.role, m.created_at, m.updated_at`

func (r *membershipsRepo) FindMembership(ctx context.Context, orgID, userID string) (domain.Membership, error) {
	return r.find(ctx,
		`SELECT `+membershipColumns+` FROM organization_members m
		 WHERE m.organization_id = $1 AND m.user_id = $2`, orgID, userID)
}

func (r *membershipsRepo) FindMembershipByEmail(ctx context.Context, orgID, email string) (domain.Membership, error) {
	return r.find(ctx,
		`SELECT `+membershipColumns+` FROM organization_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.organization_id = $1 AND u.email = $2`, orgID, email)
}

func (r *membershipsRepo) find(ctx context.Context, query string, args ...any) (domain.Membership, error) {
	var m domain.Membership
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&m.OrganizationID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membershipsRepo) ListMembers(ctx context.Context, orgID string) ([]domain.Member, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+membershipColumns+`, u.email, u.name FROM organization_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.organization_id = $1
		 ORDER BY m.created_at, m.user_id`, orgID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Member, error) {
		var m domain.Member
		err := row.Scan(&m.OrganizationID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt, &m.Email, &m.Name)
		return m, err
	})
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	ts := now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO organization_members (organization_id, user_id, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.OrganizationID, m.UserID, string(m.Role), ts, ts,
	)
	return mapConstraint(err)
}

func (r *membershipsRepo) UpdateMembershipRole(ctx context.Context, orgID, userID string, role domain.Role) error {
	return requireAffected(r.db.Exec(ctx,
		`UPDATE organization_members SET role = $1, updated_at = $2
		 WHERE organization_id = $3 AND user_id = $4`,
		string(role), now(), orgID, userID))
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, orgID, userID string) error {
	return requireAffected(r.db.Exec(ctx,
		`DELETE FROM organization_members WHERE organization_id = $1 AND user_id = $2`, orgID, userID))
}

func (r *membershipsRepo) DeleteMembershipsByOrganization(ctx context.Context, orgID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM organization_members WHERE organization_id = $1`, orgID)
	return err
}

// CountOwners locks the owner rows so concurrent demotions serialize on them.
func (r *membershipsRepo) CountOwners(ctx context.Context, orgID string) (int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM organization_members
		 WHERE organization_id = $1 AND role = $2
		 FOR UPDATE`, orgID, string(domain.RoleOwner))
	if err != nil {
		return 0, err
	}

	owners, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return len(owners), err
}
