package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/service"
	"github.com/aussiebroadwan/orgflow/pkg/httpx"
	"github.com/aussiebroadwan/orgflow/pkg/orgflowsdk"
)

type TeamsHandler struct {
	TeamService *service.TeamService
}

// HandleCreate godoc
//
//	@Summary		Create team
//	@Description	Requires OWNER or ADMIN.
//	@Tags			Teams
//	@Accept			json
//	@Produce		json
//	@Param			orgID	path		string					true	"Organization ID"
//	@Param			request	body		orgflowsdk.TeamRequest	true	"Team"
//	@Success		201		{object}	orgflowsdk.TeamResponse
//	@Failure		400		{object}	orgflowsdk.ErrorResponse
//	@Failure		403		{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/organizations/{orgID}/teams [post].
func (h *TeamsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req orgflowsdk.TeamRequest
	if !decodeBody(w, r, &req) {
		return
	}

	team, err := h.TeamService.CreateTeam(r.Context(), chi.URLParam(r, "orgID"), callerID(r), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTeam(team))
}

// HandleList godoc
//
//	@Summary	List teams
//	@Tags		Teams
//	@Produce	json
//	@Param		orgID	path	string	true	"Organization ID"
//	@Success	200		{array}	orgflowsdk.TeamResponse
//	@Failure	403		{object}	orgflowsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/organizations/{orgID}/teams [get].
func (h *TeamsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	teams, err := h.TeamService.ListTeams(r.Context(), chi.URLParam(r, "orgID"), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapSlice(teams, toTeam))
}

// HandleGet godoc
//
//	@Summary	Get team
//	@Tags		Teams
//	@Produce	json
//	@Param		teamID	path		string	true	"Team ID"
//	@Success	200		{object}	orgflowsdk.TeamResponse
//	@Failure	403		{object}	orgflowsdk.ErrorResponse
//	@Failure	404		{object}	orgflowsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/teams/{teamID} [get].
func (h *TeamsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	team, err := h.TeamService.GetTeam(r.Context(), chi.URLParam(r, "teamID"), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTeam(team))
}

// HandleUpdate godoc
//
//	@Summary	Update team
//	@Tags		Teams
//	@Accept		json
//	@Produce	json
//	@Param		teamID	path		string					true	"Team ID"
//	@Param		request	body		orgflowsdk.TeamRequest	true	"Team"
//	@Success	200		{object}	orgflowsdk.TeamResponse
//	@Failure	400		{object}	orgflowsdk.ErrorResponse
//	@Failure	403		{object}	orgflowsdk.ErrorResponse
//	@Failure	404		{object}	orgflowsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/teams/{teamID} [patch].
func (h *TeamsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req orgflowsdk.TeamRequest
	if !decodeBody(w, r, &req) {
		return
	}

	team, err := h.TeamService.UpdateTeam(r.Context(), chi.URLParam(r, "teamID"), callerID(r), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTeam(team))
}

// HandleDelete godoc
//
//	@Summary		Delete team
//	@Description	Tasks scoped to the team are kept and lose their team.
//	@Tags			Teams
//	@Param			teamID	path	string	true	"Team ID"
//	@Success		204
//	@Failure		403	{object}	orgflowsdk.ErrorResponse
//	@Failure		404	{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/teams/{teamID} [delete].
func (h *TeamsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.TeamService.DeleteTeam(r.Context(), chi.URLParam(r, "teamID"), callerID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListMembers godoc
//
//	@Summary	List team members
//	@Tags		Teams
//	@Produce	json
//	@Param		teamID	path	string	true	"Team ID"
//	@Success	200		{array}	orgflowsdk.TeamMemberResponse
//	@Failure	403		{object}	orgflowsdk.ErrorResponse
//	@Failure	404		{object}	orgflowsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/teams/{teamID}/members [get].
func (h *TeamsHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.TeamService.ListTeamMembers(r.Context(), chi.URLParam(r, "teamID"), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapSlice(members, toTeamMember))
}

// HandleAddMember godoc
//
//	@Summary		Add team member
//	@Description	The user must already be a member of the team's organization.
//	@Tags			Teams
//	@Accept			json
//	@Param			teamID	path	string				true	"Team ID"
//	@Param			request	body	orgflowsdk.UserRef	true	"User"
//	@Success		204
//	@Failure		403	{object}	orgflowsdk.ErrorResponse
//	@Failure		404	{object}	orgflowsdk.ErrorResponse
//	@Failure		409	{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/teams/{teamID}/members [post].
func (h *TeamsHandler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	var req orgflowsdk.UserRef
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.TeamService.AddTeamMember(r.Context(), chi.URLParam(r, "teamID"), callerID(r), req.UserID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRemoveMember godoc
//
//	@Summary	Remove team member
//	@Tags		Teams
//	@Param		teamID	path	string	true	"Team ID"
//	@Param		userID	path	string	true	"User ID"
//	@Success	204
//	@Failure	403	{object}	orgflowsdk.ErrorResponse
//	@Failure	404	{object}	orgflowsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/teams/{teamID}/members/{userID} [delete].
func (h *TeamsHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	err := h.TeamService.RemoveTeamMember(r.Context(), chi.URLParam(r, "teamID"), callerID(r), chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
