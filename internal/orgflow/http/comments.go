package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/service"
	"github.com/aussiebroadwan/orgflow/pkg/httpx"
	"github.com/aussiebroadwan/orgflow/pkg/orgflowsdk"
)

type CommentsHandler struct {
	CommentService *service.CommentService
}

// HandleCreate godoc
//
//	@Summary		Add comment
//	@Description	Any member of the task's organization may comment.
//	@Tags			Comments
//	@Accept			json
//	@Produce		json
//	@Param			taskID	path		string						true	"Task ID"
//	@Param			request	body		orgflowsdk.CommentRequest	true	"Comment"
//	@Success		201		{object}	orgflowsdk.CommentResponse
//	@Failure		400		{object}	orgflowsdk.ErrorResponse
//	@Failure		403		{object}	orgflowsdk.ErrorResponse
//	@Failure		404		{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/tasks/{taskID}/comments [post].
func (h *CommentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req orgflowsdk.CommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	c, err := h.CommentService.AddComment(r.Context(), chi.URLParam(r, "taskID"), callerID(r), req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toComment(c))
}

// HandleList godoc
//
//	@Summary	List comments
//	@Tags		Comments
//	@Produce	json
//	@Param		taskID	path	string	true	"Task ID"
//	@Success	200		{array}	orgflowsdk.CommentResponse
//	@Failure	403		{object}	orgflowsdk.ErrorResponse
//	@Failure	404		{object}	orgflowsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/tasks/{taskID}/comments [get].
func (h *CommentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.CommentService.ListComments(r.Context(), chi.URLParam(r, "taskID"), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapSlice(list, toComment))
}

// HandleUpdate godoc
//
//	@Summary		Edit comment
//	@Description	Only the author may edit a comment.
//	@Tags			Comments
//	@Accept			json
//	@Produce		json
//	@Param			commentID	path		string						true	"Comment ID"
//	@Param			request		body		orgflowsdk.CommentRequest	true	"Comment"
//	@Success		200			{object}	orgflowsdk.CommentResponse
//	@Failure		400			{object}	orgflowsdk.ErrorResponse
//	@Failure		403			{object}	orgflowsdk.ErrorResponse
//	@Failure		404			{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/comments/{commentID} [patch].
func (h *CommentsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req orgflowsdk.CommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	c, err := h.CommentService.UpdateComment(r.Context(), chi.URLParam(r, "commentID"), callerID(r), req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toComment(c))
}

// HandleDelete godoc
//
//	@Summary		Delete comment
//	@Description	The author, or an OWNER or ADMIN of the organization, may delete a comment.
//	@Tags			Comments
//	@Param			commentID	path	string	true	"Comment ID"
//	@Success		204
//	@Failure		403	{object}	orgflowsdk.ErrorResponse
//	@Failure		404	{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/comments/{commentID} [delete].
func (h *CommentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.CommentService.DeleteComment(r.Context(), chi.URLParam(r, "commentID"), callerID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
