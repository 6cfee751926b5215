package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/service"
	"github.com/aussiebroadwan/orgflow/pkg/httpx"
	"github.com/aussiebroadwan/orgflow/pkg/orgflowsdk"
)

type NotificationsHandler struct {
	NotificationService *service.NotificationService
}

// HandleList godoc
//
//	@Summary		List notifications
//	@Description	The caller's notifications in an organization, newest first.
//	@Tags			Notifications
//	@Produce		json
//	@Param			orgID	path	string	true	"Organization ID"
//	@Param			unread	query	bool	false	"Only unread notifications"
//	@Success		200		{array}	orgflowsdk.Notification
//	@Failure		400		{object}	orgflowsdk.ErrorResponse
//	@Failure		403		{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/organizations/{orgID}/notifications [get].
func (h *NotificationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	unreadOnly := false
	if v := r.URL.Query().Get("unread"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, orgflowsdk.CodeInvalid, "unread must be a boolean")
			return
		}
		unreadOnly = b
	}

	list, err := h.NotificationService.List(r.Context(), chi.URLParam(r, "orgID"), callerID(r), unreadOnly)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapSlice(list, toNotification))
}

// HandleMarkRead godoc
//
//	@Summary		Mark notification read
//	@Description	Only the recipient may mark a notification. Marking an already read notification keeps its original time.
//	@Tags			Notifications
//	@Produce		json
//	@Param			notificationID	path		string	true	"Notification ID"
//	@Success		200				{object}	orgflowsdk.Notification
//	@Failure		403				{object}	orgflowsdk.ErrorResponse
//	@Failure		404				{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/notifications/{notificationID}/read [post].
func (h *NotificationsHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.NotificationService.MarkRead(r.Context(), chi.URLParam(r, "notificationID"), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toNotification(n))
}

// HandleMarkAllRead godoc
//
//	@Summary	Mark all notifications read
//	@Tags		Notifications
//	@Produce	json
//	@Param		orgID	path		string	true	"Organization ID"
//	@Success	200		{object}	orgflowsdk.MarkAllReadResponse
//	@Failure	403		{object}	orgflowsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/organizations/{orgID}/notifications/read-all [post].
func (h *NotificationsHandler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.NotificationService.MarkAllRead(r.Context(), chi.URLParam(r, "orgID"), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, orgflowsdk.MarkAllReadResponse{Updated: n})
}
