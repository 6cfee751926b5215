package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/store"
	"github.com/aussiebroadwan/orgflow/pkg/idx"
	"github.com/aussiebroadwan/orgflow/pkg/slogx"
)

// NewTask is the input to CreateTask. Zero Status and Priority take the
// defaults TODO and MEDIUM.
type NewTask struct {
	Title       string
	Description string
	TeamID      string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
}

// TaskPatch holds the fields UpdateTask changes; nil fields are left alone.
// A non-nil empty TeamID clears the team, and ClearDueDate removes the due
// date.
type TaskPatch struct {
	Title        *string
	Description  *string
	TeamID       *string
	Status       *domain.TaskStatus
	Priority     *domain.TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
}

type TaskService struct {
	Store         store.Store
	Authz         *Authorizer
	Notifications *NotificationService
}

func (s *TaskService) CreateTask(ctx context.Context, orgID, callerID string, in NewTask) (domain.Task, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input and apply defaults
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return domain.Task{}, domain.Errorf(domain.ErrInvalid, "title is required")
	}
	if in.Status == "" {
		in.Status = domain.TaskStatusTodo
	}
	if in.Priority == "" {
		in.Priority = domain.TaskPriorityMedium
	}
	if !in.Status.Valid() {
		return domain.Task{}, domain.Errorf(domain.ErrInvalid, "unknown status %q", in.Status)
	}
	if !in.Priority.Valid() {
		return domain.Task{}, domain.Errorf(domain.ErrInvalid, "unknown priority %q", in.Priority)
	}

	// 2. Authorize and check the team belongs to the organization
	if _, err := s.Authz.Authorize(ctx, callerID, orgID, domain.Managers); err != nil {
		return domain.Task{}, err
	}
	if in.TeamID != "" {
		if err := s.checkTeam(ctx, orgID, in.TeamID); err != nil {
			return domain.Task{}, err
		}
	}

	// 3. Persist
	task := domain.Task{
		ID:             idx.New().String(),
		OrganizationID: orgID,
		TeamID:         in.TeamID,
		Title:          in.Title,
		Description:    in.Description,
		Status:         in.Status,
		Priority:       in.Priority,
		DueDate:        in.DueDate,
		CreatedBy:      callerID,
	}
	tasks := s.Store.Tasks()
	if err := tasks.CreateTask(ctx, task); err != nil {
		log.Error("failed to create task", slog.String("org_id", orgID), slog.Any("error", err))
		return domain.Task{}, writeErr(err, "create task", nil)
	}

	log.Info("task created", slog.String("org_id", orgID), slog.String("task_id", task.ID))

	created, err := tasks.GetTaskByID(ctx, task.ID)
	if err != nil {
		return domain.Task{}, lookupErr(err, "task")
	}
	return created, nil
}

func (s *TaskService) ListTasks(ctx context.Context, orgID, callerID string) ([]domain.Task, error) {
	if _, err := s.Authz.Authorize(ctx, callerID, orgID, domain.AnyMember); err != nil {
		return nil, err
	}
	tasks, err := s.Store.Tasks().ListTasks(ctx, orgID)
	if err != nil {
		return nil, domain.StoreError("list tasks", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID, callerID string) (domain.Task, error) {
	task, _, err := s.task(ctx, taskID, callerID, domain.AnyMember)
	return task, err
}

// UpdateTask applies patch. Managers may edit any task; members only tasks
// they are assigned to.
func (s *TaskService) UpdateTask(ctx context.Context, taskID, callerID string, patch TaskPatch) (domain.Task, error) {
	task, caller, err := s.task(ctx, taskID, callerID, domain.AnyMember)
	if err != nil {
		return domain.Task{}, err
	}

	if !domain.Managers.Contains(caller.Role) {
		assigned, err := s.Store.Tasks().IsAssignee(ctx, taskID, callerID)
		if err != nil {
			return domain.Task{}, domain.StoreError("check assignee", err)
		}
		if !assigned {
			return domain.Task{}, domain.Errorf(domain.ErrInsufficientRole, "only managers or assignees can update a task")
		}
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return domain.Task{}, domain.Errorf(domain.ErrInvalid, "title is required")
		}
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return domain.Task{}, domain.Errorf(domain.ErrInvalid, "unknown status %q", *patch.Status)
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return domain.Task{}, domain.Errorf(domain.ErrInvalid, "unknown priority %q", *patch.Priority)
		}
		task.Priority = *patch.Priority
	}
	switch {
	case patch.ClearDueDate:
		task.DueDate = nil
	case patch.DueDate != nil:
		task.DueDate = patch.DueDate
	}
	if patch.TeamID != nil {
		if *patch.TeamID != "" {
			if err := s.checkTeam(ctx, task.OrganizationID, *patch.TeamID); err != nil {
				return domain.Task{}, err
			}
		}
		task.TeamID = *patch.TeamID
	}

	tasks := s.Store.Tasks()
	if err := tasks.UpdateTask(ctx, task); err != nil {
		return domain.Task{}, writeErr(err, "update task", nil)
	}
	updated, err := tasks.GetTaskByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, lookupErr(err, "task")
	}
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID, callerID string) error {
	if _, _, err := s.task(ctx, taskID, callerID, domain.Managers); err != nil {
		return err
	}
	if err := s.Store.Tasks().DeleteTask(ctx, taskID); err != nil {
		return writeErr(err, "delete task", nil)
	}
	slogx.FromContext(ctx).Info("task deleted", slog.String("task_id", taskID))
	return nil
}

// AssignUser assigns targetID to the task. The assignment and the
// TASK_ASSIGNED notification commit together; the notification is pushed to
// live connections after the commit.
func (s *TaskService) AssignUser(ctx context.Context, taskID, callerID, targetID string) (domain.TaskAssignee, error) {
	log := slogx.FromContext(ctx).With(slog.String("task_id", taskID), slog.String("target_id", targetID))

	var (
		assignee     domain.TaskAssignee
		notification domain.Notification
	)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Resolve the task and authorize against its organization
		task, err := tx.Tasks().GetTaskByID(ctx, taskID)
		if err != nil {
			return lookupErr(err, "task")
		}
		if _, err := s.Authz.AuthorizeTx(ctx, tx, callerID, task.OrganizationID, domain.Managers); err != nil {
			return err
		}

		// 2. Target must be in the organization, and on the team if the task has one
		if _, err := tx.Memberships().FindMembership(ctx, task.OrganizationID, targetID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Errorf(domain.ErrNotMember, "user %s is not a member of the organization", targetID)
			}
			return domain.StoreError("find membership", err)
		}
		if task.TeamID != "" {
			onTeam, err := tx.Teams().IsTeamMember(ctx, task.TeamID, targetID)
			if err != nil {
				return domain.StoreError("check team member", err)
			}
			if !onTeam {
				return domain.Errorf(domain.ErrInvalid, "user must be a member of the task's team")
			}
		}

		// 3. Assignment and notification
		if err := tx.Tasks().AddAssignee(ctx, taskID, targetID); err != nil {
			return writeErr(err, "user is already assigned", nil)
		}
		assignees, err := tx.Tasks().ListAssignees(ctx, taskID)
		if err != nil {
			return domain.StoreError("list assignees", err)
		}
		for _, a := range assignees {
			if a.UserID == targetID {
				assignee = a
			}
		}

		if s.Notifications != nil {
			notification, err = s.Notifications.EmitTx(ctx, tx, NewNotification{
				UserID:         targetID,
				OrganizationID: task.OrganizationID,
				Type:           domain.NotificationTaskAssigned,
				EntityID:       &task.ID,
				Message:        fmt.Sprintf("You have been assigned to task: %s", task.Title),
			})
			return err
		}
		return nil
	})
	if err != nil {
		log.Warn("task assignment failed", slog.Any("error", err))
		return domain.TaskAssignee{}, passthrough(err, "assign user")
	}

	if s.Notifications != nil {
		s.Notifications.Publish(ctx, notification)
	}

	log.Info("user assigned to task")
	return assignee, nil
}

func (s *TaskService) UnassignUser(ctx context.Context, taskID, callerID, targetID string) error {
	if _, _, err := s.task(ctx, taskID, callerID, domain.Managers); err != nil {
		return err
	}
	if err := s.Store.Tasks().RemoveAssignee(ctx, taskID, targetID); err != nil {
		return writeErr(err, "user is not assigned to this task", nil)
	}
	return nil
}

func (s *TaskService) ListAssignees(ctx context.Context, taskID, callerID string) ([]domain.TaskAssignee, error) {
	if _, _, err := s.task(ctx, taskID, callerID, domain.AnyMember); err != nil {
		return nil, err
	}
	assignees, err := s.Store.Tasks().ListAssignees(ctx, taskID)
	if err != nil {
		return nil, domain.StoreError("list assignees", err)
	}
	return assignees, nil
}

// task loads a task and authorizes the caller against its organization.
func (s *TaskService) task(ctx context.Context, taskID, callerID string, allowed domain.RoleSet) (domain.Task, domain.Membership, error) {
	task, err := s.Store.Tasks().GetTaskByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, domain.Membership{}, lookupErr(err, "task")
	}
	m, err := s.Authz.Authorize(ctx, callerID, task.OrganizationID, allowed)
	if err != nil {
		return domain.Task{}, domain.Membership{}, err
	}
	return task, m, nil
}

func (s *TaskService) checkTeam(ctx context.Context, orgID, teamID string) error {
	team, err := s.Store.Teams().GetTeamByID(ctx, teamID)
	if err != nil {
		return lookupErr(err, "team")
	}
	if team.OrganizationID != orgID {
		return domain.Errorf(domain.ErrNotFound, "team not found in this organization")
	}
	return nil
}
