package http

import (
	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/pkg/orgflowsdk"
)

func toUser(u domain.User) orgflowsdk.UserResponse {
	return orgflowsdk.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

func toOrganization(o domain.Organization) orgflowsdk.OrganizationResponse {
	return orgflowsdk.OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		Slug:      o.Slug,
		OwnerID:   o.OwnerID,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func toMembership(m domain.Membership) orgflowsdk.MemberResponse {
	return orgflowsdk.MemberResponse{
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           string(m.Role),
		CreatedAt:      m.CreatedAt,
	}
}

func toMember(m domain.Member) orgflowsdk.MemberResponse {
	out := toMembership(m.Membership)
	out.Email = m.Email
	out.Name = m.Name
	return out
}

func toTeam(t domain.Team) orgflowsdk.TeamResponse {
	return orgflowsdk.TeamResponse{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		Name:           t.Name,
		Description:    t.Description,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func toTeamMember(m domain.TeamMember) orgflowsdk.TeamMemberResponse {
	return orgflowsdk.TeamMemberResponse{
		TeamID:    m.TeamID,
		UserID:    m.UserID,
		Email:     m.Email,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

func toTask(t domain.Task) orgflowsdk.TaskResponse {
	return orgflowsdk.TaskResponse{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		TeamID:         t.TeamID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		DueDate:        t.DueDate,
		CreatedBy:      t.CreatedBy,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func toAssignee(a domain.TaskAssignee) orgflowsdk.AssigneeResponse {
	return orgflowsdk.AssigneeResponse{
		TaskID:    a.TaskID,
		UserID:    a.UserID,
		Email:     a.Email,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
	}
}

func toComment(c domain.Comment) orgflowsdk.CommentResponse {
	return orgflowsdk.CommentResponse{
		ID:          c.ID,
		TaskID:      c.TaskID,
		UserID:      c.UserID,
		AuthorEmail: c.AuthorEmail,
		AuthorName:  c.AuthorName,
		Content:     c.Content,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toNotification(n domain.Notification) orgflowsdk.Notification {
	return orgflowsdk.Notification{
		ID:             n.ID,
		UserID:         n.UserID,
		OrganizationID: n.OrganizationID,
		Type:           string(n.Type),
		EntityID:       n.EntityID,
		Message:        n.Message,
		ReadAt:         n.ReadAt,
		CreatedAt:      n.CreatedAt,
	}
}

// mapSlice converts every element of in with fn. It never returns nil so
// empty lists encode as [].
func mapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
