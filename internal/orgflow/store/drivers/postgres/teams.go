package postgres

import (
	"context"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"

	"github.com/jackc/pgx/v5"
)

type teamsRepo struct {
	db querier
}

const teamColumns = `id, organization_id, name, description, created_at, updated_at`

func (r *teamsRepo) CreateTeam(ctx context.Context, t domain.Team) error {
	ts := now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO teams (`+teamColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.OrganizationID, t.Name, t.Description, ts, ts,
	)
	return mapConstraint(err)
}

func (r *teamsRepo) GetTeamByID(ctx context.Context, id string) (domain.Team, error) {
	var t domain.Team
	err := r.db.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id).
		Scan(&t.ID, &t.OrganizationID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Team{}, mapNotFound(err)
	}
	return t, nil
}

func (r *teamsRepo) ListTeams(ctx context.Context, orgID string) ([]domain.Team, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE organization_id = $1 ORDER BY name, id`, orgID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Team, error) {
		var t domain.Team
		err := row.Scan(&t.ID, &t.OrganizationID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
		return t, err
	})
}

func (r *teamsRepo) UpdateTeam(ctx context.Context, t domain.Team) error {
	return requireAffected(r.db.Exec(ctx,
		`UPDATE teams SET name = $1, description = $2, updated_at = $3 WHERE id = $4`,
		t.Name, t.Description, now(), t.ID))
}

func (r *teamsRepo) DeleteTeam(ctx context.Context, id string) error {
	return requireAffected(r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id))
}

func (r *teamsRepo) AddTeamMember(ctx context.Context, teamID, userID string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO team_members (team_id, user_id, created_at) VALUES ($1, $2, $3)`,
		teamID, userID, now())
	return mapConstraint(err)
}

func (r *teamsRepo) IsTeamMember(ctx context.Context, teamID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`,
		teamID, userID).Scan(&exists)
	return exists, err
}

func (r *teamsRepo) ListTeamMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	rows, err := r.db.Query(ctx,
		`SELECT tm.team_id, tm.user_id, u.email, u.name, tm.created_at
		 FROM team_members tm
		 JOIN users u ON u.id = tm.user_id
		 WHERE tm.team_id = $1
		 ORDER BY tm.created_at, tm.user_id`, teamID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TeamMember, error) {
		var m domain.TeamMember
		err := row.Scan(&m.TeamID, &m.UserID, &m.Email, &m.Name, &m.CreatedAt)
		return m, err
	})
}

func (r *teamsRepo) RemoveTeamMember(ctx context.Context, teamID, userID string) error {
	return requireAffected(r.db.Exec(ctx,
		`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID))
}

func (r *teamsRepo) RemoveUserFromOrganizationTeams(ctx context.Context, orgID, userID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM team_members tm
		 USING teams t
		 WHERE tm.team_id = t.id AND t.organization_id = $1 AND tm.user_id = $2`,
		orgID, userID)
	return err
}
