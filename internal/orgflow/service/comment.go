package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/store"
	"github.com/aussiebroadwan/orgflow/pkg/idx"
	"github.com/aussiebroadwan/orgflow/pkg/slogx"
)

// CommentService manages discussion on tasks. Every operation requires
// membership in the task's organization.
type CommentService struct {
	Store store.Store
	Authz *Authorizer
}

func (s *CommentService) AddComment(ctx context.Context, taskID, callerID, content string) (domain.Comment, error) {
	log := slogx.FromContext(ctx)

	content, err := commentContent(content)
	if err != nil {
		return domain.Comment{}, err
	}

	if _, _, err := s.task(ctx, taskID, callerID); err != nil {
		return domain.Comment{}, err
	}

	id := idx.New().String()
	comments := s.Store.Comments()
	if err := comments.CreateComment(ctx, domain.Comment{
		ID:      id,
		TaskID:  taskID,
		UserID:  callerID,
		Content: content,
	}); err != nil {
		log.Error("failed to create comment", slog.String("task_id", taskID), slog.Any("error", err))
		return domain.Comment{}, writeErr(err, "create comment", nil)
	}

	log.Info("comment added", slog.String("comment_id", id), slog.String("task_id", taskID))

	c, err := comments.GetCommentByID(ctx, id)
	if err != nil {
		return domain.Comment{}, lookupErr(err, "comment")
	}
	return c, nil
}

// ListComments returns the task's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, taskID, callerID string) ([]domain.Comment, error) {
	if _, _, err := s.task(ctx, taskID, callerID); err != nil {
		return nil, err
	}
	list, err := s.Store.Comments().ListComments(ctx, taskID)
	if err != nil {
		return nil, domain.StoreError("list comments", err)
	}
	return list, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, commentID, callerID, content string) (domain.Comment, error) {
	content, err := commentContent(content)
	if err != nil {
		return domain.Comment{}, err
	}

	c, m, err := s.comment(ctx, commentID, callerID)
	if err != nil {
		return domain.Comment{}, err
	}
	if err := CheckCommentEdit(m, c); err != nil {
		return domain.Comment{}, err
	}

	comments := s.Store.Comments()
	if err := comments.UpdateCommentContent(ctx, commentID, content); err != nil {
		return domain.Comment{}, writeErr(err, "comment not found", nil)
	}

	updated, err := comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return domain.Comment{}, lookupErr(err, "comment")
	}
	return updated, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, commentID, callerID string) error {
	c, m, err := s.comment(ctx, commentID, callerID)
	if err != nil {
		return err
	}
	if err := CheckCommentDelete(m, c); err != nil {
		return err
	}

	if err := s.Store.Comments().DeleteComment(ctx, commentID); err != nil {
		return writeErr(err, "comment not found", nil)
	}

	slogx.FromContext(ctx).Info("comment deleted",
		slog.String("comment_id", commentID),
		slog.String("caller_id", callerID),
	)
	return nil
}

// task loads a task and checks the caller belongs to its organization.
func (s *CommentService) task(ctx context.Context, taskID, callerID string) (domain.Task, domain.Membership, error) {
	task, err := s.Store.Tasks().GetTaskByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, domain.Membership{}, lookupErr(err, "task")
	}
	m, err := s.Authz.Authorize(ctx, callerID, task.OrganizationID, domain.AnyMember)
	if err != nil {
		return domain.Task{}, domain.Membership{}, err
	}
	return task, m, nil
}

// comment loads a comment and the caller's membership in its organization.
func (s *CommentService) comment(ctx context.Context, commentID, callerID string) (domain.Comment, domain.Membership, error) {
	c, err := s.Store.Comments().GetCommentByID(ctx, commentID)
	if err != nil {
		return domain.Comment{}, domain.Membership{}, lookupErr(err, "comment")
	}
	_, m, err := s.task(ctx, c.TaskID, callerID)
	if err != nil {
		return domain.Comment{}, domain.Membership{}, err
	}
	return c, m, nil
}

func commentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", domain.Errorf(domain.ErrInvalid, "content is required")
	}
	if len(content) > domain.MaxCommentLength {
		return "", domain.Errorf(domain.ErrInvalid, "content exceeds %d bytes", domain.MaxCommentLength)
	}
	return content, nil
}
