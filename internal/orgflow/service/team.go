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

type TeamService struct {
	Store store.Store
	Authz *Authorizer
}

func (s *TeamService) CreateTeam(ctx context.Context, orgID, callerID, name, description string) (domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Team{}, domain.Errorf(domain.ErrInvalid, "name is required")
	}
	if _, err := s.Authz.Authorize(ctx, callerID, orgID, domain.Managers); err != nil {
		return domain.Team{}, err
	}

	teams := s.Store.Teams()
	id := idx.New().String()
	if err := teams.CreateTeam(ctx, domain.Team{
		ID:             id,
		OrganizationID: orgID,
		Name:           name,
		Description:    description,
	}); err != nil {
		return domain.Team{}, writeErr(err, "create team", nil)
	}

	slogx.FromContext(ctx).Info("team created", slog.String("org_id", orgID), slog.String("team_id", id))

	team, err := teams.GetTeamByID(ctx, id)
	if err != nil {
		return domain.Team{}, lookupErr(err, "team")
	}
	return team, nil
}

func (s *TeamService) ListTeams(ctx context.Context, orgID, callerID string) ([]domain.Team, error) {
	if _, err := s.Authz.Authorize(ctx, callerID, orgID, domain.AnyMember); err != nil {
		return nil, err
	}
	teams, err := s.Store.Teams().ListTeams(ctx, orgID)
	if err != nil {
		return nil, domain.StoreError("list teams", err)
	}
	return teams, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID, callerID string) (domain.Team, error) {
	return s.team(ctx, teamID, callerID, domain.AnyMember)
}

// UpdateTeam replaces the name and description of a team.
func (s *TeamService) UpdateTeam(ctx context.Context, teamID, callerID, name, description string) (domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Team{}, domain.Errorf(domain.ErrInvalid, "name is required")
	}
	team, err := s.team(ctx, teamID, callerID, domain.Managers)
	if err != nil {
		return domain.Team{}, err
	}

	team.Name = name
	team.Description = description
	if err := s.Store.Teams().UpdateTeam(ctx, team); err != nil {
		return domain.Team{}, writeErr(err, "update team", nil)
	}
	updated, err := s.Store.Teams().GetTeamByID(ctx, teamID)
	if err != nil {
		return domain.Team{}, lookupErr(err, "team")
	}
	return updated, nil
}

// DeleteTeam removes the team. Tasks scoped to it become organization wide.
func (s *TeamService) DeleteTeam(ctx context.Context, teamID, callerID string) error {
	if _, err := s.team(ctx, teamID, callerID, domain.Managers); err != nil {
		return err
	}
	if err := s.Store.Teams().DeleteTeam(ctx, teamID); err != nil {
		return writeErr(err, "delete team", nil)
	}
	slogx.FromContext(ctx).Info("team deleted", slog.String("team_id", teamID))
	return nil
}

// AddTeamMember puts an existing organization member on the team.
func (s *TeamService) AddTeamMember(ctx context.Context, teamID, callerID, userID string) error {
	team, err := s.team(ctx, teamID, callerID, domain.Managers)
	if err != nil {
		return err
	}

	if _, err := s.Store.Memberships().FindMembership(ctx, team.OrganizationID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Errorf(domain.ErrNotMember, "user %s is not a member of the organization", userID)
		}
		return domain.StoreError("find membership", err)
	}

	if err := s.Store.Teams().AddTeamMember(ctx, teamID, userID); err != nil {
		return writeErr(err, "user is already on the team", nil)
	}
	return nil
}

func (s *TeamService) RemoveTeamMember(ctx context.Context, teamID, callerID, userID string) error {
	if _, err := s.team(ctx, teamID, callerID, domain.Managers); err != nil {
		return err
	}
	if err := s.Store.Teams().RemoveTeamMember(ctx, teamID, userID); err != nil {
		return writeErr(err, "team member", nil)
	}
	return nil
}

func (s *TeamService) ListTeamMembers(ctx context.Context, teamID, callerID string) ([]domain.TeamMember, error) {
	if _, err := s.team(ctx, teamID, callerID, domain.AnyMember); err != nil {
		return nil, err
	}
	members, err := s.Store.Teams().ListTeamMembers(ctx, teamID)
	if err != nil {
		return nil, domain.StoreError("list team members", err)
	}
	return members, nil
}

// team loads a team and authorizes the caller against its organization.
func (s *TeamService) team(ctx context.Context, teamID, callerID string, allowed domain.RoleSet) (domain.Team, error) {
	team, err := s.Store.Teams().GetTeamByID(ctx, teamID)
	if err != nil {
		return domain.Team{}, lookupErr(err, "team")
	}
	if _, err := s.Authz.Authorize(ctx, callerID, team.OrganizationID, allowed); err != nil {
		return domain.Team{}, err
	}
	return team, nil
}
