package orgflowsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ============================================================================
// Teams
// ============================================================================

func (s *Session) CreateTeam(ctx context.Context, orgID string, req TeamRequest) (*TeamResponse, error) {
	var out TeamResponse
	if err := s.do(ctx, http.MethodPost, orgPath(orgID)+"/teams", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListTeams(ctx context.Context, orgID string) ([]TeamResponse, error) {
	var out []TeamResponse
	if err := s.do(ctx, http.MethodGet, orgPath(orgID)+"/teams", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetTeam(ctx context.Context, teamID string) (*TeamResponse, error) {
	var out TeamResponse
	if err := s.do(ctx, http.MethodGet, teamPath(teamID), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateTeam(ctx context.Context, teamID string, req TeamRequest) (*TeamResponse, error) {
	var out TeamResponse
	if err := s.do(ctx, http.MethodPatch, teamPath(teamID), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteTeam(ctx context.Context, teamID string) error {
	return s.do(ctx, http.MethodDelete, teamPath(teamID), nil, nil, http.StatusNoContent)
}

func (s *Session) AddTeamMember(ctx context.Context, teamID, userID string) error {
	return s.do(ctx, http.MethodPost, teamPath(teamID)+"/members", UserRef{UserID: userID}, nil, http.StatusNoContent)
}

func (s *Session) RemoveTeamMember(ctx context.Context, teamID, userID string) error {
	return s.do(ctx, http.MethodDelete, teamPath(teamID)+"/members/"+url.PathEscape(userID), nil, nil, http.StatusNoContent)
}

func (s *Session) ListTeamMembers(ctx context.Context, teamID string) ([]TeamMemberResponse, error) {
	var out []TeamMemberResponse
	if err := s.do(ctx, http.MethodGet, teamPath(teamID)+"/members", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ============================================================================
// Tasks
// ============================================================================

func (s *Session) CreateTask(ctx context.Context, orgID string, req CreateTaskRequest) (*TaskResponse, error) {
	var out TaskResponse
	if err := s.do(ctx, http.MethodPost, orgPath(orgID)+"/tasks", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListTasks(ctx context.Context, orgID string) ([]TaskResponse, error) {
	var out []TaskResponse
	if err := s.do(ctx, http.MethodGet, orgPath(orgID)+"/tasks", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetTask(ctx context.Context, taskID string) (*TaskResponse, error) {
	var out TaskResponse
	if err := s.do(ctx, http.MethodGet, taskPath(taskID), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateTask(ctx context.Context, taskID string, req UpdateTaskRequest) (*TaskResponse, error) {
	var out TaskResponse
	if err := s.do(ctx, http.MethodPatch, taskPath(taskID), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteTask(ctx context.Context, taskID string) error {
	return s.do(ctx, http.MethodDelete, taskPath(taskID), nil, nil, http.StatusNoContent)
}

// AssignUser assigns userID to the task, which notifies them.
func (s *Session) AssignUser(ctx context.Context, taskID, userID string) (*AssigneeResponse, error) {
	var out AssigneeResponse
	if err := s.do(ctx, http.MethodPost, taskPath(taskID)+"/assignees", UserRef{UserID: userID}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UnassignUser(ctx context.Context, taskID, userID string) error {
	return s.do(ctx, http.MethodDelete, taskPath(taskID)+"/assignees/"+url.PathEscape(userID), nil, nil, http.StatusNoContent)
}

func (s *Session) ListAssignees(ctx context.Context, taskID string) ([]AssigneeResponse, error) {
	var out []AssigneeResponse
	if err := s.do(ctx, http.MethodGet, taskPath(taskID)+"/assignees", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ============================================================================
// Comments
// ============================================================================

func (s *Session) AddComment(ctx context.Context, taskID, content string) (*CommentResponse, error) {
	var out CommentResponse
	if err := s.do(ctx, http.MethodPost, taskPath(taskID)+"/comments", CommentRequest{Content: content}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListComments returns the task's comments, newest first.
func (s *Session) ListComments(ctx context.Context, taskID string) ([]CommentResponse, error) {
	var out []CommentResponse
	if err := s.do(ctx, http.MethodGet, taskPath(taskID)+"/comments", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) UpdateComment(ctx context.Context, commentID, content string) (*CommentResponse, error) {
	var out CommentResponse
	if err := s.do(ctx, http.MethodPatch, commentPath(commentID), CommentRequest{Content: content}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteComment(ctx context.Context, commentID string) error {
	return s.do(ctx, http.MethodDelete, commentPath(commentID), nil, nil, http.StatusNoContent)
}

func teamPath(teamID string) string { return "/v1/teams/" + url.PathEscape(teamID) }
func taskPath(taskID string) string { return "/v1/tasks/" + url.PathEscape(taskID) }
func commentPath(id string) string { return "/v1/comments/" + url.PathEscape(id) }
