package handler

import (
	"encoding/json"
	"net/http"

	"github.com/avagyan/studgroups/internal/domain"
)

func (h *Handler) RequestToJoin(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req JoinGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleError(w, domain.NewValidationError("invalid request body"))
		return
	}

	request, err := h.joinRequestService.Request(r.Context(), req.GroupID, actor, req.Message)
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(JoinGroupResponse{
		Request: domainJoinRequestToHTTP(request),
	})
}

func (h *Handler) CancelJoinRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req CancelJoinRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleError(w, domain.NewValidationError("invalid request body"))
		return
	}

	if err := h.joinRequestService.Cancel(r.Context(), req.RequestID, actor); err != nil {
		h.handleError(w, err)
		return
	}

	writeOk(w)
}

func (h *Handler) RespondToJoinRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req RespondJoinRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleError(w, domain.NewValidationError("invalid request body"))
		return
	}

	if err := h.acceptanceService.RespondToJoinRequest(r.Context(), req.GroupID, req.RequestID, actor, req.Accept); err != nil {
		h.handleError(w, err)
		return
	}

	writeOk(w)
}

// ListJoinRequests отдает заявки либо группы (?group_id=), либо пользователя (?user_id=)
func (h *Handler) ListJoinRequests(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")
	userID := r.URL.Query().Get("user_id")

	var requests []*domain.JoinRequest
	var err error
	switch {
	case groupID != "":
		requests, err = h.joinRequestService.ListForGroup(r.Context(), groupID)
	case userID != "":
		requests, err = h.joinRequestService.ListForUser(r.Context(), userID)
	default:
		h.handleError(w, domain.NewValidationError("group_id or user_id is required"))
		return
	}

	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ListJoinRequestsResponse{
		Requests: domainJoinRequestsToHTTP(requests),
	})
}
