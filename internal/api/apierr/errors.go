package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/protocasual/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeItemNotFound      = "ITEM_NOT_FOUND"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeInsufficientItems = "INSUFFICIENT_ITEMS"
	CodePurchaseRejected  = "PURCHASE_REJECTED"
	CodeAlreadyClaimed    = "ALREADY_CLAIMED"
	CodeNotEquippable     = "NOT_EQUIPPABLE"
	CodeSlotEmpty         = "SLOT_EMPTY"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeUnknownGameMode   = "UNKNOWN_GAME_MODE"
	CodeUnknownState      = "UNKNOWN_STATE"
	CodeNoLevelReward     = "NO_LEVEL_REWARD"
	CodeSaveReadOnly      = "SAVE_READ_ONLY"
	CodeSaveUnavailable   = "SAVE_UNAVAILABLE"
	CodeNotFound          = "NOT_FOUND"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrItemNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeItemNotFound, "Item not found"}}
	case errors.Is(err, model.ErrUnknownCurrency):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, err.Error()}}
	case errors.Is(err, model.ErrUnknownGameMode):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownGameMode, err.Error()}}
	case errors.Is(err, model.ErrUnknownState):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownState, err.Error()}}
	case errors.Is(err, model.ErrUnsupportedSchema):
		return &httpError{http.StatusConflict, APIError{CodeSaveReadOnly, "Save was written by a newer version and is read-only"}}
	case errors.Is(err, model.ErrSaveUnavailable):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeSaveUnavailable, "Save could not be read; persistence is paused until reload"}}
	case errors.Is(err, model.ErrKeyNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeNotFound, "No save found"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewConflictError reports a rejected precondition, such as an unaffordable spend
func NewConflictError(code, message string) error {
	return &httpError{http.StatusConflict, APIError{code, message}}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(code, message string) error {
	return &httpError{http.StatusNotFound, APIError{code, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
