package sqlite

import (
	"context"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
)

type membershipsRepo struct {
	db dbtx
}

const membershipColumns = `m.organization_id, m.user_id, m.role, m.created_at, m.updated_at`

func (r *membershipsRepo) FindMembership(ctx context.Context, orgID, userID string) (domain.Membership, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM organization_members m
		 WHERE m.organization_id = ? AND m.user_id = ?`, orgID, userID)
	return scanMembership(row)
}

func (r *membershipsRepo) FindMembershipByEmail(ctx context.Context, orgID, email string) (domain.Membership, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM organization_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.organization_id = ? AND u.email = ?`, orgID, email)
	return scanMembership(row)
}

func (r *membershipsRepo) ListMembers(ctx context.Context, orgID string) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+membershipColumns+`, u.email, u.name FROM organization_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.organization_id = ?
		 ORDER BY m.created_at, m.user_id`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(
			&m.OrganizationID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt,
			&m.Email, &m.Name,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	ts := now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO organization_members (organization_id, user_id, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		m.OrganizationID, m.UserID, string(m.Role), ts, ts,
	)
	return mapConstraint(err)
}

func (r *membershipsRepo) UpdateMembershipRole(ctx context.Context, orgID, userID string, role domain.Role) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE organization_members SET role = ?, updated_at = ?
		 WHERE organization_id = ? AND user_id = ?`,
		string(role), now(), orgID, userID))
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, orgID, userID string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`DELETE FROM organization_members WHERE organization_id = ? AND user_id = ?`, orgID, userID))
}

func (r *membershipsRepo) DeleteMembershipsByOrganization(ctx context.Context, orgID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM organization_members WHERE organization_id = ?`, orgID)
	return err
}

func (r *membershipsRepo) CountOwners(ctx context.Context, orgID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM organization_members WHERE organization_id = ? AND role = ?`,
		orgID, string(domain.RoleOwner)).Scan(&n)
	return n, err
}

func scanMembership(row interface{ Scan(...any) error }) (domain.Membership, error) {
	var m domain.Membership
	if err := row.Scan(&m.OrganizationID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return m, nil
}
