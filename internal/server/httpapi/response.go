package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yeojiphap/choki/internal/common"
)

// envelope wraps every response body.
type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Status: status, Message: message, Data: data})
}

// statusFor maps a service error onto an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrUserNotFound),
		errors.Is(err, common.ErrFamilyNotFound),
		errors.Is(err, common.ErrRouteNotFound),
		errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrAlreadyInFamily),
		errors.Is(err, common.ErrInviteCodeTaken):
		return http.StatusConflict
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrUnknownMission),
		errors.Is(err, common.ErrInvalidExpAmount):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes the error envelope. Internal failures are logged and
// reported without their details.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), err.Error(), "path", r.URL.Path)
		message = common.ErrorInternal.Error()
	}
	writeJSON(w, status, message, nil)
}
