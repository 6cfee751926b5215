package sqlite

import (
	"context"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
)

type organizationsRepo struct {
	db dbtx
}

const organizationColumns = `o.id, o.name, o.slug, o.owner_id, o.created_at, o.updated_at`

func (r *organizationsRepo) CreateOrganization(ctx context.Context, o domain.Organization) error {
	ts := now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO organizations (id, name, slug, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.Slug, o.OwnerID, ts, ts,
	)
	return mapConstraint(err)
}

func (r *organizationsRepo) GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+organizationColumns+` FROM organizations o WHERE o.id = ?`, id)

	var o domain.Organization
	if err := row.Scan(&o.ID, &o.Name, &o.Slug, &o.OwnerID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	return o, nil
}

func (r *organizationsRepo) ListOrganizationsForUser(ctx context.Context, userID string) ([]domain.Organization, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+organizationColumns+`
		 FROM organizations o
		 JOIN organization_members m ON m.organization_id = o.id
		 WHERE m.user_id = ?
		 ORDER BY o.created_at, o.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Slug, &o.OwnerID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func (r *organizationsRepo) UpdateOrganizationName(ctx context.Context, id, name string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE organizations SET name = ?, updated_at = ? WHERE id = ?`, name, now(), id))
}

func (r *organizationsRepo) DeleteOrganization(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = ?`, id))
}
