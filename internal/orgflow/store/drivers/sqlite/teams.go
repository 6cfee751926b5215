package sqlite

import (
	"context"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
)

type teamsRepo struct {
	db dbtx
}

const teamColumns = `id, organization_id, name, description, created_at, updated_at`

func (r *teamsRepo) CreateTeam(ctx context.Context, t domain.Team) error {
	ts := now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO teams (`+teamColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.OrganizationID, t.Name, t.Description, ts, ts,
	)
	return mapConstraint(err)
}

func (r *teamsRepo) GetTeamByID(ctx context.Context, id string) (domain.Team, error) {
	var t domain.Team
	err := r.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = ?`, id).
		Scan(&t.ID, &t.OrganizationID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Team{}, mapNotFound(err)
	}
	return t, nil
}

func (r *teamsRepo) ListTeams(ctx context.Context, orgID string) ([]domain.Team, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE organization_id = ? ORDER BY name, id`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.OrganizationID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *teamsRepo) UpdateTeam(ctx context.Context, t domain.Team) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE teams SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		t.Name, t.Description, now(), t.ID))
}

func (r *teamsRepo) DeleteTeam(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id))
}

func (r *teamsRepo) AddTeamMember(ctx context.Context, teamID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO team_members (team_id, user_id, created_at) VALUES (?, ?, ?)`,
		teamID, userID, now())
	return mapConstraint(err)
}

func (r *teamsRepo) IsTeamMember(ctx context.Context, teamID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM team_members WHERE team_id = ? AND user_id = ?)`,
		teamID, userID).Scan(&exists)
	return exists, err
}

func (r *teamsRepo) ListTeamMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tm.team_id, tm.user_id, u.email, u.name, tm.created_at
		 FROM team_members tm
		 JOIN users u ON u.id = tm.user_id
		 WHERE tm.team_id = ?
		 ORDER BY tm.created_at, tm.user_id`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.Email, &m.Name, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *teamsRepo) RemoveTeamMember(ctx context.Context, teamID, userID string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`DELETE FROM team_members WHERE team_id = ? AND user_id = ?`, teamID, userID))
}

func (r *teamsRepo) RemoveUserFromOrganizationTeams(ctx context.Context, orgID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM team_members
		 WHERE user_id = ?
		   AND team_id IN (SELECT id FROM teams WHERE organization_id = ?)`,
		userID, orgID)
	return err
}
