package http

import (
	"encoding/json"
	"net/http"

	apperrors "carrental/pkg/errors"
)

type ErrorResponse struct {
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Error   string         `json:"error,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// StatusFor maps an error code to the status this API answers with.
// Every client-caused failure is a 400, a missing credential is a 401.
func StatusFor(appErr *apperrors.AppError) int {
	switch appErr.Code {
	case apperrors.CodeInvalidInput,
		apperrors.CodeValidation,
		apperrors.CodeBadRequest,
		apperrors.CodeConflict,
		apperrors.CodeNotFound,
		apperrors.CodeInvalidOTP,
		apperrors.CodeInvalidToken:
		return http.StatusBadRequest
	case apperrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	resp := ErrorResponse{
		Message: appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	}
	if appErr.Code == apperrors.CodeInternal && appErr.Err != nil {
		resp.Error = appErr.Err.Error()
	}
	return WriteJSON(w, StatusFor(appErr), resp)
}

func WriteMessage(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, MessageResponse{Message: message})
}

func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteError(w, apperrors.InvalidInput(message))
}
