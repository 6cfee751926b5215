package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aussiebroadwan/orgflow/internal/orgflow/domain"
	"github.com/aussiebroadwan/orgflow/pkg/httpx"
	"github.com/aussiebroadwan/orgflow/pkg/orgflowsdk"
	"github.com/aussiebroadwan/orgflow/pkg/slogx"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindNotMember, domain.KindInsufficientRole, domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindLastOwner, domain.KindAlreadyMember, domain.KindExpired,
		domain.KindEmailMismatch, domain.KindInvalid:
		return http.StatusBadRequest
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes err using its kind. Anything that maps to a 5xx is
// logged and its detail hidden from the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	status := StatusFor(kind)

	if status >= http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteError(w, status, orgflowsdk.CodeServerError, "Internal server error")
		return
	}

	httpx.WriteError(w, status, string(kind), err.Error())
}

// decodeBody decodes and validates a JSON body into dst. On failure it writes
// a 400 and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, orgflowsdk.CodeInvalid, "Invalid JSON body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, orgflowsdk.CodeValidation, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// callerID returns the authenticated user. Routes that call it are always
// behind AuthnMiddleware.
func callerID(r *http.Request) string {
	id, _ := httpx.UserIDFromContext(r.Context())
	return id
}
