package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avagyan/studgroups/internal/domain"
)

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		statusCode := getStatusCode(domainErr.Code)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		json.NewEncoder(w).Encode(ErrorResponse{
			Error: ErrorDetail{
				Code:    domainErr.Code,
				Message: domainErr.Message,
			},
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		},
	})
}

func getStatusCode(errorCode string) int {
	switch errorCode {
	case "BAD_REQUEST":
		return http.StatusBadRequest
	case "UNAUTHORIZED":
		return http.StatusUnauthorized
	case "NOT_LEADER", "NOT_REQUESTER", "FORBIDDEN":
		return http.StatusForbidden
	case "NOT_FOUND":
		return http.StatusNotFound
	case "ALREADY_IN_PLAN", "ALREADY_MEMBER", "DUPLICATE_OFFER", "TOO_MANY_PENDING",
		"GROUP_NOT_OPEN", "MEMBERSHIP_FROZEN", "OFFER_NOT_PENDING", "STATE_CONFLICT",
		"MUST_TRANSFER_FIRST", "NOT_MEMBER":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
