package postgres

import (
	"context"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"

	"github.com/jackc/pgx/v5"
)

type invitesRepo struct {
	db querier
}

const inviteColumns = `id, email, organization_id, role, token_hash, created_by, expires_at, created_at, updated_at`

func (r *invitesRepo) UpsertInvite(ctx context.Context, inv domain.Invite) (domain.Invite, error) {
	ts := now()
	row := r.db.QueryRow(ctx,
		`INSERT INTO invites (`+inviteColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (email, organization_id) DO UPDATE SET
		     role       = EXCLUDED.role,
		     token_hash = EXCLUDED.token_hash,
		     created_by = EXCLUDED.created_by,
		     expires_at = EXCLUDED.expires_at,
		     updated_at = EXCLUDED.updated_at
		 RETURNING `+inviteColumns,
		inv.ID, inv.Email, inv.OrganizationID, string(inv.Role), inv.TokenHash,
		inv.CreatedBy, inv.ExpiresAt.UTC(), ts, ts,
	)

	out, err := scanInvite(row)
	if err != nil {
		return domain.Invite{}, mapConstraint(err)
	}
	return out, nil
}

func (r *invitesRepo) GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error) {
	inv, err := scanInvite(r.db.QueryRow(ctx, `SELECT `+inviteColumns+` FROM invites WHERE token_hash = $1`, hash))
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitesRepo) DeleteInvite(ctx context.Context, id string) error {
	return requireAffected(r.db.Exec(ctx, `DELETE FROM invites WHERE id = $1`, id))
}

func scanInvite(row pgx.Row) (domain.Invite, error) {
	var inv domain.Invite
	err := row.Scan(
		&inv.ID, &inv.Email, &inv.OrganizationID, &inv.Role, &inv.TokenHash,
		&inv.CreatedBy, &inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	inv.ExpiresAt = inv.ExpiresAt.UTC()
	return inv, err
}
