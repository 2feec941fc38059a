package dto

import (
	"github.com/campmatch/backend/internal/apperr"
)

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data"`
}

func NewSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{OK: true, Data: data}
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorResponse struct {
	OK    bool      `json:"ok"`
	Error ErrorBody `json:"error"`
}

func NewErrorResponse(code, message string, details any) ErrorResponse {
	return ErrorResponse{OK: false, Error: ErrorBody{Code: code, Message: message, Details: details}}
}

func FromAppError(e *apperr.Error) ErrorResponse {
	return NewErrorResponse(e.Code, e.Message, e.Details)
}

// Paginated wraps a list payload with the counters the catalog pages need.
type Paginated struct {
	Items      any `json:"items"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

func NewPaginated(items any, page, limit, totalCount int) Paginated {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}
	return Paginated{Items: items, Page: page, Limit: limit, TotalCount: totalCount, TotalPages: totalPages}
}
