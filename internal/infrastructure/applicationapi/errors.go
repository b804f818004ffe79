package applicationapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	domainerrors "scrapemyuni.backend/internal/domain/errors"
)

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// decodeError turns an error response back into an AppError of the same
// kind, so errors.Is works the same on both sides of the wire.
func decodeError(status int, body []byte) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Code == "" {
		eb = errorBody{Message: strings.TrimSpace(string(body))}
	}
	if eb.Message == "" {
		eb.Message = http.StatusText(status)
	}

	sentinel := sentinelFor(eb.Code, status)
	appErr := domainerrors.NewAppError(status, eb.Code, eb.Message, fmt.Errorf("%w: %s", sentinel, eb.Message))
	if appErr.Code == "" {
		appErr.Code = codeFor(status)
	}
	appErr.Details = eb.Details
	return appErr
}

func sentinelFor(code string, status int) error {
	switch code {
	case domainerrors.CodeNotFound:
		return domainerrors.ErrNotFound
	case domainerrors.CodeConflict:
		return domainerrors.ErrAlreadyExists
	case domainerrors.CodeInvalidInput:
		return domainerrors.ErrInvalidInput
	case domainerrors.CodeBadRequest:
		return domainerrors.ErrBadRequest
	case domainerrors.CodeUnauthorized:
		return domainerrors.ErrUnauthorized
	case domainerrors.CodeForbidden:
		return domainerrors.ErrForbidden
	case domainerrors.CodeValidationFailed:
		return domainerrors.ErrValidationFailed
	case domainerrors.CodeBackendUnavailable:
		return domainerrors.ErrBackendUnavailable
	}

	switch {
	case status == http.StatusNotFound:
		return domainerrors.ErrNotFound
	case status == http.StatusConflict:
		return domainerrors.ErrAlreadyExists
	case status == http.StatusUnauthorized:
		return domainerrors.ErrUnauthorized
	case status == http.StatusForbidden:
		return domainerrors.ErrForbidden
	case status == http.StatusUnprocessableEntity:
		return domainerrors.ErrValidationFailed
	case status == http.StatusBadRequest:
		return domainerrors.ErrInvalidInput
	case status >= http.StatusBadGateway && status <= http.StatusGatewayTimeout:
		return domainerrors.ErrBackendUnavailable
	}
	return fmt.Errorf("unexpected status %d", status)
}

func codeFor(status int) string {
	switch status {
	case http.StatusNotFound:
		return domainerrors.CodeNotFound
	case http.StatusConflict:
		return domainerrors.CodeConflict
	case http.StatusUnauthorized:
		return domainerrors.CodeUnauthorized
	case http.StatusForbidden:
		return domainerrors.CodeForbidden
	case http.StatusUnprocessableEntity:
		return domainerrors.CodeValidationFailed
	case http.StatusBadRequest:
		return domainerrors.CodeInvalidInput
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return domainerrors.CodeBackendUnavailable
	}
	return domainerrors.CodeInternalError
}
