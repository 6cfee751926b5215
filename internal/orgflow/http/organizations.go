package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/service"
	"github.com/aussiebroadwan/orgflow/pkg/httpx"
	"github.com/aussiebroadwan/orgflow/pkg/orgflowsdk"
)

type OrganizationsHandler struct {
	OrganizationService *service.OrganizationService
	InviteService       *service.InviteService
}

// HandleCreate godoc
//
//	@Summary		Create organization
//	@Description	Create an organization. The caller becomes its first OWNER.
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		orgflowsdk.CreateOrganizationRequest	true	"Organization"
//	@Success		201		{object}	orgflowsdk.OrganizationResponse
//	@Failure		400		{object}	orgflowsdk.ErrorResponse
//	@Failure		409		{object}	orgflowsdk.ErrorResponse	"slug taken"
//	@Security		BearerAuth
//	@Router			/v1/organizations [post].
func (h *OrganizationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req orgflowsdk.CreateOrganizationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	org, err := h.OrganizationService.CreateOrganization(r.Context(), callerID(r), req.Name, req.Slug)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toOrganization(org))
}

// HandleList godoc
//
//	@Summary	List organizations
//	@Tags		Organizations
//	@Produce	json
//	@Success	200	{array}	orgflowsdk.OrganizationResponse
//	@Security	BearerAuth
//	@Router		/v1/organizations [get].
func (h *OrganizationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.OrganizationService.ListOrganizations(r.Context(), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapSlice(orgs, toOrganization))
}

// HandleGet godoc
//
//	@Summary	Get organization
//	@Tags		Organizations
//	@Produce	json
//	@Param		orgID	path		string	true	"Organization ID"
//	@Success	200		{object}	orgflowsdk.OrganizationResponse
//	@Failure	403		{object}	orgflowsdk.ErrorResponse
//	@Failure	404		{object}	orgflowsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/organizations/{orgID} [get].
func (h *OrganizationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	org, err := h.OrganizationService.GetOrganization(r.Context(), chi.URLParam(r, "orgID"), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOrganization(org))
}

// HandleUpdate godoc
//
//	@Summary		Rename organization
//	@Description	Requires OWNER or ADMIN.
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Param			orgID	path		string									true	"Organization ID"
//	@Param			request	body		orgflowsdk.UpdateOrganizationRequest	true	"New name"
//	@Success		200		{object}	orgflowsdk.OrganizationResponse
//	@Failure		400		{object}	orgflowsdk.ErrorResponse
//	@Failure		403		{object}	orgflowsdk.ErrorResponse
//	@Failure		404		{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/organizations/{orgID} [patch].
func (h *OrganizationsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req orgflowsdk.UpdateOrganizationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	org, err := h.OrganizationService.UpdateOrganization(r.Context(), chi.URLParam(r, "orgID"), callerID(r), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOrganization(org))
}

// HandleDelete godoc
//
//	@Summary		Delete organization
//	@Description	Requires OWNER. Removes every team, task, invite and notification of the organization.
//	@Tags			Organizations
//	@Param			orgID	path	string	true	"Organization ID"
//	@Success		204
//	@Failure		403	{object}	orgflowsdk.ErrorResponse
//	@Failure		404	{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/organizations/{orgID} [delete].
func (h *OrganizationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.OrganizationService.DeleteOrganization(r.Context(), chi.URLParam(r, "orgID"), callerID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListMembers godoc
//
//	@Summary	List members
//	@Tags		Members
//	@Produce	json
//	@Param		orgID	path	string	true	"Organization ID"
//	@Success	200		{array}	orgflowsdk.MemberResponse
//	@Failure	403		{object}	orgflowsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/organizations/{orgID}/members [get].
func (h *OrganizationsHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.OrganizationService.ListMembers(r.Context(), chi.URLParam(r, "orgID"), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapSlice(members, toMember))
}

// HandleUpdateRole godoc
//
//	@Summary		Change a member's role
//	@Description	OWNER or ADMIN may change roles. Only an OWNER may grant OWNER or change an OWNER.
//	@Description	The last OWNER cannot be demoted.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			orgID	path		string						true	"Organization ID"
//	@Param			userID	path		string						true	"Target user ID"
//	@Param			request	body		orgflowsdk.UpdateRoleRequest	true	"New role"
//	@Success		200		{object}	orgflowsdk.MemberResponse
//	@Failure		400		{object}	orgflowsdk.ErrorResponse	"last_owner, invalid"
//	@Failure		403		{object}	orgflowsdk.ErrorResponse
//	@Failure		404		{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/organizations/{orgID}/members/{userID} [patch].
func (h *OrganizationsHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req orgflowsdk.UpdateRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	m, err := h.OrganizationService.UpdateRole(
		r.Context(),
		chi.URLParam(r, "orgID"),
		callerID(r),
		chi.URLParam(r, "userID"),
		domain.Role(req.Role),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMembership(m))
}

// HandleRemoveMember godoc
//
//	@Summary		Remove a member
//	@Description	Any member may leave. Removing others requires OWNER or ADMIN, and removing an OWNER requires OWNER.
//	@Tags			Members
//	@Param			orgID	path	string	true	"Organization ID"
//	@Param			userID	path	string	true	"Target user ID"
//	@Success		204
//	@Failure		400	{object}	orgflowsdk.ErrorResponse	"last_owner"
//	@Failure		403	{object}	orgflowsdk.ErrorResponse
//	@Failure		404	{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/organizations/{orgID}/members/{userID} [delete].
func (h *OrganizationsHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	err := h.OrganizationService.RemoveMember(
		r.Context(),
		chi.URLParam(r, "orgID"),
		callerID(r),
		chi.URLParam(r, "userID"),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleInvite godoc
//
//	@Summary		Invite by email
//	@Description	Requires OWNER or ADMIN. Re-inviting the same email replaces the pending invite and its token.
//	@Description	The raw token is only returned here.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			orgID	path		string					true	"Organization ID"
//	@Param			request	body		orgflowsdk.InviteRequest	true	"Invite"
//	@Success		201		{object}	orgflowsdk.InviteResponse
//	@Failure		400		{object}	orgflowsdk.ErrorResponse	"already_member, invalid"
//	@Failure		403		{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/organizations/{orgID}/invites [post].
func (h *OrganizationsHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	var req orgflowsdk.InviteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	inv, token, err := h.InviteService.Invite(
		r.Context(),
		chi.URLParam(r, "orgID"),
		callerID(r),
		req.Email,
		domain.Role(req.Role),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, orgflowsdk.InviteResponse{
		ID:             inv.ID,
		Email:          inv.Email,
		OrganizationID: inv.OrganizationID,
		Role:           string(inv.Role),
		Token:          token,
		ExpiresAt:      inv.ExpiresAt,
	})
}

// HandleAcceptInvite godoc
//
//	@Summary		Accept an invite
//	@Description	The caller's email must match the invite exactly. The inviter is notified on success.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		orgflowsdk.AcceptInviteRequest	true	"Invite token"
//	@Success		200		{object}	orgflowsdk.MemberResponse
//	@Failure		400		{object}	orgflowsdk.ErrorResponse	"expired, email_mismatch, already_member"
//	@Failure		404		{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/invites/accept [post].
func (h *OrganizationsHandler) HandleAcceptInvite(w http.ResponseWriter, r *http.Request) {
	var req orgflowsdk.AcceptInviteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	m, err := h.InviteService.Accept(r.Context(), callerID(r), req.Token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMembership(m))
}
