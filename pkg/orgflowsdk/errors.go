package orgflowsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in ErrorDetail.Code.
const (
	CodeNotMember        = "not_member"
	CodeInsufficientRole = "insufficient_role"
	CodeAlreadyMember    = "already_member"
	CodeNotFound         = "not_found"
	CodeExpired          = "expired"
	CodeEmailMismatch    = "email_mismatch"
	CodeLastOwner        = "last_owner"
	CodeForbidden        = "forbidden"
	CodeInvalid          = "invalid"
	CodeConflict         = "conflict"
	CodeUnauthenticated  = "unauthenticated"
	CodeValidation       = "validation_error"
	CodeRateLimited      = "rate_limit_exceeded"
	CodeServerError      = "server_error"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse builds an APIError from an error body, falling back to
// the status text when the body is not an ErrorResponse.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Code != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       errResp.Error.Code,
			Message:    errResp.Error.Message,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       CodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
