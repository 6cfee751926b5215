package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/internal/orgflow/service"
	"github.com/aussiebroadwan/orgflow/pkg/httpx"
	"github.com/aussiebroadwan/orgflow/pkg/orgflowsdk"
)

type TasksHandler struct {
	TaskService *service.TaskService
}

// HandleCreate godoc
//
//	@Summary		Create task
//	@Description	Requires OWNER or ADMIN. Status defaults to TODO and priority to MEDIUM.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			orgID	path		string						true	"Organization ID"
//	@Param			request	body		orgflowsdk.CreateTaskRequest	true	"Task"
//	@Success		201		{object}	orgflowsdk.TaskResponse
//	@Failure		400		{object}	orgflowsdk.ErrorResponse
//	@Failure		403		{object}	orgflowsdk.ErrorResponse
//	@Failure		404		{object}	orgflowsdk.ErrorResponse	"team not in organization"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{orgID}/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req orgflowsdk.CreateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.TaskService.CreateTask(r.Context(), chi.URLParam(r, "orgID"), callerID(r), service.NewTask{
		Title:       req.Title,
		Description: req.Description,
		TeamID:      req.TeamID,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTask(task))
}

// HandleList godoc
//
//	@Summary	List tasks
//	@Tags		Tasks
//	@Produce	json
//	@Param		orgID	path	string	true	"Organization ID"
//	@Success	200		{array}	orgflowsdk.TaskResponse
//	@Failure	403		{object}	orgflowsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/organizations/{orgID}/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.TaskService.ListTasks(r.Context(), chi.URLParam(r, "orgID"), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapSlice(tasks, toTask))
}

// HandleGet godoc
//
//	@Summary	Get task
//	@Tags		Tasks
//	@Produce	json
//	@Param		taskID	path		string	true	"Task ID"
//	@Success	200		{object}	orgflowsdk.TaskResponse
//	@Failure	403		{object}	orgflowsdk.ErrorResponse
//	@Failure	404		{object}	orgflowsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/tasks/{taskID} [get].
func (h *TasksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	task, err := h.TaskService.GetTask(r.Context(), chi.URLParam(r, "taskID"), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTask(task))
}

// HandleUpdate godoc
//
//	@Summary		Update task
//	@Description	OWNER and ADMIN may update any task. Members may only update tasks they are assigned to.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			taskID	path		string						true	"Task ID"
//	@Param			request	body		orgflowsdk.UpdateTaskRequest	true	"Changed fields"
//	@Success		200		{object}	orgflowsdk.TaskResponse
//	@Failure		400		{object}	orgflowsdk.ErrorResponse
//	@Failure		403		{object}	orgflowsdk.ErrorResponse
//	@Failure		404		{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/tasks/{taskID} [patch].
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req orgflowsdk.UpdateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := service.TaskPatch{
		Title:        req.Title,
		Description:  req.Description,
		TeamID:       req.TeamID,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
	}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		patch.Status = &s
	}
	if req.Priority != nil {
		p := domain.TaskPriority(*req.Priority)
		patch.Priority = &p
	}

	task, err := h.TaskService.UpdateTask(r.Context(), chi.URLParam(r, "taskID"), callerID(r), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTask(task))
}

// HandleDelete godoc
//
//	@Summary	Delete task
//	@Tags		Tasks
//	@Param		taskID	path	string	true	"Task ID"
//	@Success	204
//	@Failure	403	{object}	orgflowsdk.ErrorResponse
//	@Failure	404	{object}	orgflowsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/tasks/{taskID} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.TaskService.DeleteTask(r.Context(), chi.URLParam(r, "taskID"), callerID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListAssignees godoc
//
//	@Summary	List assignees
//	@Tags		Tasks
//	@Produce	json
//	@Param		taskID	path	string	true	"Task ID"
//	@Success	200		{array}	orgflowsdk.AssigneeResponse
//	@Failure	403		{object}	orgflowsdk.ErrorResponse
//	@Failure	404		{object}	orgflowsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/tasks/{taskID}/assignees [get].
func (h *TasksHandler) HandleListAssignees(w http.ResponseWriter, r *http.Request) {
	assignees, err := h.TaskService.ListAssignees(r.Context(), chi.URLParam(r, "taskID"), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapSlice(assignees, toAssignee))
}

// HandleAssign godoc
//
//	@Summary		Assign user
//	@Description	Requires OWNER or ADMIN. The assignee is sent a TASK_ASSIGNED notification.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			taskID	path		string				true	"Task ID"
//	@Param			request	body		orgflowsdk.UserRef	true	"Assignee"
//	@Success		201		{object}	orgflowsdk.AssigneeResponse
//	@Failure		400		{object}	orgflowsdk.ErrorResponse	"not on the task's team"
//	@Failure		403		{object}	orgflowsdk.ErrorResponse
//	@Failure		404		{object}	orgflowsdk.ErrorResponse
//	@Failure		409		{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/tasks/{taskID}/assignees [post].
func (h *TasksHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	var req orgflowsdk.UserRef
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := h.TaskService.AssignUser(r.Context(), chi.URLParam(r, "taskID"), callerID(r), req.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAssignee(a))
}

// HandleUnassign godoc
//
//	@Summary	Unassign user
//	@Tags		Tasks
//	@Param		taskID	path	string	true	"Task ID"
//	@Param		userID	path	string	true	"User ID"
//	@Success	204
//	@Failure	403	{object}	orgflowsdk.ErrorResponse
//	@Failure	404	{object}	orgflowsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/tasks/{taskID}/assignees/{userID} [delete].
func (h *TasksHandler) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	err := h.TaskService.UnassignUser(r.Context(), chi.URLParam(r, "taskID"), callerID(r), chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
