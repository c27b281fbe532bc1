package handler

import (
	"encoding/json"
	"net/http"

	"github.com/avagyan/studgroups/internal/domain"
)

// errUnauthorized - личность действующего пользователя обязана приходить
// от вышестоящего слоя аутентификации в заголовке X-User-Id
var errUnauthorized = &domain.DomainError{
	Code:    "UNAUTHORIZED",
	Message: "X-User-Id header is required",
}

func actorID(r *http.Request) (string, error) {
	id := r.Header.Get("X-User-Id")
	if id == "" {
		return "", errUnauthorized
	}
	return id, nil
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleError(w, domain.NewValidationError("invalid request body"))
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), req.PlanID, actor, req.GroupName, req.Description)
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(CreateGroupResponse{
		Group: domainGroupToHTTP(group),
	})
}

func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")
	if groupID == "" {
		h.handleError(w, domain.NewValidationError("group_id parameter is required"))
		return
	}

	group, err := h.groupService.GetGroup(r.Context(), groupID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(domainGroupToHTTP(group))
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	planID := r.URL.Query().Get("plan_id")
	if planID == "" {
		h.handleError(w, domain.NewValidationError("plan_id parameter is required"))
		return
	}

	groups, err := h.groupService.ListGroups(r.Context(), planID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ListGroupsResponse{
		Groups: domainGroupsToHTTP(groups),
	})
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")
	if groupID == "" {
		h.handleError(w, domain.NewValidationError("group_id parameter is required"))
		return
	}

	members, err := h.groupService.ListMembers(r.Context(), groupID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ListMembersResponse{
		GroupID: groupID,
		Members: domainMembersToHTTP(members),
	})
}

func (h *Handler) LeaveGroup(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req LeaveGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleError(w, domain.NewValidationError("invalid request body"))
		return
	}

	if err := h.groupService.Leave(r.Context(), req.GroupID, actor); err != nil {
		h.handleError(w, err)
		return
	}

	writeOk(w)
}

func (h *Handler) TransferLeadership(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req TransferLeadershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleError(w, domain.NewValidationError("invalid request body"))
		return
	}

	if err := h.groupService.TransferLeadership(r.Context(), req.GroupID, actor, req.NewLeaderID); err != nil {
		h.handleError(w, err)
		return
	}

	writeOk(w)
}

func (h *Handler) AssignTopic(w http.ResponseWriter, r *http.Request) {
	var req AssignTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleError(w, domain.NewValidationError("invalid request body"))
		return
	}

	if err := h.groupService.AssignTopic(r.Context(), req.GroupID); err != nil {
		h.handleError(w, err)
		return
	}

	writeOk(w)
}

func writeOk(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(OkResponse{Ok: true})
}
