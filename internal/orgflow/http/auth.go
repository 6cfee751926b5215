package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/service"
	"github.com/aussiebroadwan/orgflow/pkg/httpx"
	"github.com/aussiebroadwan/orgflow/pkg/orgflowsdk"
)

type AuthHandler struct {
	UserService *service.UserService
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Create a user account. Emails are stored exactly as given and compared case sensitively.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		orgflowsdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	orgflowsdk.UserResponse
//	@Failure		400		{object}	orgflowsdk.ErrorResponse
//	@Failure		409		{object}	orgflowsdk.ErrorResponse	"email already registered"
//	@Failure		429		{object}	orgflowsdk.ErrorResponse
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req orgflowsdk.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.UserService.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUser(u))
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Exchange email and password for a bearer access token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		orgflowsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	orgflowsdk.TokenResponse
//	@Failure		400		{object}	orgflowsdk.ErrorResponse
//	@Failure		401		{object}	orgflowsdk.ErrorResponse
//	@Failure		429		{object}	orgflowsdk.ErrorResponse
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req orgflowsdk.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, orgflowsdk.TokenResponse{
		AccessToken: sess.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(sess.ExpiresAt).Seconds()),
		User:        toUser(sess.User),
	})
}

// HandleMe godoc
//
//	@Summary		Current user
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	orgflowsdk.UserResponse
//	@Failure		401	{object}	orgflowsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/users/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.GetUser(r.Context(), callerID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}
