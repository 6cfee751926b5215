package orgflowsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session performs authenticated requests with a fixed access token.
type Session struct {
	client      *Client
	accessToken string
}

// AccessToken returns the bearer token used by this session.
func (s *Session) AccessToken() string { return s.accessToken }

func (s *Session) do(ctx context.Context, method, path string, body, out any, expected int) error {
	return s.client.do(ctx, s.accessToken, method, path, body, out, expected)
}

// ============================================================================
// Account
// ============================================================================

func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	var out UserResponse
	if err := s.do(ctx, http.MethodGet, "/v1/users/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Organizations and members
// ============================================================================

func (s *Session) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*OrganizationResponse, error) {
	var out OrganizationResponse
	if err := s.do(ctx, http.MethodPost, "/v1/organizations", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListOrganizations(ctx context.Context) ([]OrganizationResponse, error) {
	var out []OrganizationResponse
	if err := s.do(ctx, http.MethodGet, "/v1/organizations", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetOrganization(ctx context.Context, orgID string) (*OrganizationResponse, error) {
	var out OrganizationResponse
	if err := s.do(ctx, http.MethodGet, orgPath(orgID), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateOrganization(ctx context.Context, orgID string, req UpdateOrganizationRequest) (*OrganizationResponse, error) {
	var out OrganizationResponse
	if err := s.do(ctx, http.MethodPatch, orgPath(orgID), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteOrganization(ctx context.Context, orgID string) error {
	return s.do(ctx, http.MethodDelete, orgPath(orgID), nil, nil, http.StatusNoContent)
}

func (s *Session) ListMembers(ctx context.Context, orgID string) ([]MemberResponse, error) {
	var out []MemberResponse
	if err := s.do(ctx, http.MethodGet, orgPath(orgID)+"/members", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) UpdateMemberRole(ctx context.Context, orgID, userID, role string) (*MemberResponse, error) {
	var out MemberResponse
	path := orgPath(orgID) + "/members/" + url.PathEscape(userID)
	if err := s.do(ctx, http.MethodPatch, path, UpdateRoleRequest{Role: role}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveMember removes userID from the organization. Passing the session's
// own user ID leaves the organization.
func (s *Session) RemoveMember(ctx context.Context, orgID, userID string) error {
	path := orgPath(orgID) + "/members/" + url.PathEscape(userID)
	return s.do(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}

// ============================================================================
// Invites
// ============================================================================

func (s *Session) Invite(ctx context.Context, orgID string, req InviteRequest) (*InviteResponse, error) {
	var out InviteResponse
	if err := s.do(ctx, http.MethodPost, orgPath(orgID)+"/invites", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) AcceptInvite(ctx context.Context, token string) (*MemberResponse, error) {
	var out MemberResponse
	if err := s.do(ctx, http.MethodPost, "/v1/invites/accept", AcceptInviteRequest{Token: token}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Notifications
// ============================================================================

func (s *Session) ListNotifications(ctx context.Context, orgID string, unreadOnly bool) ([]Notification, error) {
	path := orgPath(orgID) + "/notifications"
	if unreadOnly {
		path += "?unread=true"
	}
	var out []Notification
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) MarkNotificationRead(ctx context.Context, notificationID string) (*Notification, error) {
	var out Notification
	path := "/v1/notifications/" + url.PathEscape(notificationID) + "/read"
	if err := s.do(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) MarkAllNotificationsRead(ctx context.Context, orgID string) (*MarkAllReadResponse, error) {
	var out MarkAllReadResponse
	if err := s.do(ctx, http.MethodPost, orgPath(orgID)+"/notifications/read-all", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func orgPath(orgID string) string {
	return "/v1/organizations/" + url.PathEscape(orgID)
}
