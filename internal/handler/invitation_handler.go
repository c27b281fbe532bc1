package handler

import (
	"encoding/json"
	"net/http"

	"github.com/avagyan/studgroups/internal/domain"
)

func (h *Handler) InviteMember(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleError(w, domain.NewValidationError("invalid request body"))
		return
	}

	invitation, err := h.invitationService.Invite(r.Context(), req.GroupID, actor, req.InviteeID, req.Message)
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(InviteResponse{
		Invitation: domainInvitationToHTTP(invitation),
	})
}

func (h *Handler) InviteMultiple(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req InviteMultipleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleError(w, domain.NewValidationError("invalid request body"))
		return
	}

	result, err := h.invitationService.InviteMany(r.Context(), req.GroupID, actor, req.InviteeIDs, req.Message)
	if err != nil {
		h.handleError(w, err)
		return
	}

	skipped := result.Skipped
	if skipped == nil {
		skipped = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(InviteMultipleResponse{
		Created: domainInvitationsToHTTP(result.Created),
		Skipped: skipped,
	})
}

func (h *Handler) CancelInvitation(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req CancelInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleError(w, domain.NewValidationError("invalid request body"))
		return
	}

	if err := h.invitationService.Cancel(r.Context(), req.GroupID, req.InvitationID, actor); err != nil {
		h.handleError(w, err)
		return
	}

	writeOk(w)
}

func (h *Handler) RespondToInvitation(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		h.handleError(w, err)
		return
	}

	var req RespondInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleError(w, domain.NewValidationError("invalid request body"))
		return
	}

	if err := h.acceptanceService.RespondToInvitation(r.Context(), req.InvitationID, actor, req.Accept); err != nil {
		h.handleError(w, err)
		return
	}

	writeOk(w)
}

// ListInvitations отдает приглашения либо группы (?group_id=),
// либо пользователя в рамках плана (?user_id=&plan_id=)
func (h *Handler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")
	userID := r.URL.Query().Get("user_id")
	planID := r.URL.Query().Get("plan_id")

	var invitations []*domain.Invitation
	var err error
	switch {
	case groupID != "":
		invitations, err = h.invitationService.ListForGroup(r.Context(), groupID)
	case userID != "" && planID != "":
		invitations, err = h.invitationService.ListForUser(r.Context(), userID, planID)
	default:
		h.handleError(w, domain.NewValidationError("group_id or user_id with plan_id is required"))
		return
	}

	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ListInvitationsResponse{
		Invitations: domainInvitationsToHTTP(invitations),
	})
}
