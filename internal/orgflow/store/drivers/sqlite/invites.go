package sqlite

import (
	"context"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
)

type invitesRepo struct {
	db dbtx
}

const inviteColumns = `id, email, organization_id, role, token_hash, created_by, expires_at, created_at, updated_at`

func (r *invitesRepo) UpsertInvite(ctx context.Context, inv domain.Invite) (domain.Invite, error) {
	ts := now()
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO invites (`+inviteColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (email, organization_id) DO UPDATE SET
		     role       = excluded.role,
		     token_hash = excluded.token_hash,
		     created_by = excluded.created_by,
		     expires_at = excluded.expires_at,
		     updated_at = excluded.updated_at
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
	row := r.db.QueryRowContext(ctx, `SELECT `+inviteColumns+` FROM invites WHERE token_hash = ?`, hash)
	return scanInvite(row)
}

func (r *invitesRepo) DeleteInvite(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM invites WHERE id = ?`, id))
}

func scanInvite(row interface{ Scan(...any) error }) (domain.Invite, error) {
	var inv domain.Invite
	if err := row.Scan(
		&inv.ID, &inv.Email, &inv.OrganizationID, &inv.Role, &inv.TokenHash,
		&inv.CreatedBy, &inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	inv.ExpiresAt = inv.ExpiresAt.UTC()
	return inv, nil
}
