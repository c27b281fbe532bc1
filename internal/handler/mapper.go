package handler

import (
	"time"

	"github.com/avagyan/studgroups/internal/domain"
)

func domainGroupToHTTP(group *domain.Group) GroupResponse {
	return GroupResponse{
		GroupID:     group.ID,
		PlanID:      group.PlanID,
		GroupName:   group.Name,
		Description: group.Description,
		LeaderID:    group.LeaderID,
		MemberCount: group.MemberCount,
		Capacity:    group.Capacity,
		Status:      string(group.Status),
		CreatedAt:   group.CreatedAt.Format(time.RFC3339),
	}
}

func domainGroupsToHTTP(groups []*domain.Group) []GroupResponse {
	result := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		result = append(result, domainGroupToHTTP(group))
	}
	return result
}

func domainMembersToHTTP(memberships []*domain.Membership) []MemberResponse {
	result := make([]MemberResponse, 0, len(memberships))
	for _, membership := range memberships {
		result = append(result, MemberResponse{
			UserID:   membership.UserID,
			JoinedAt: membership.JoinedAt.Format(time.RFC3339),
		})
	}
	return result
}

func domainInvitationToHTTP(invitation *domain.Invitation) InvitationResponse {
	return InvitationResponse{
		InvitationID: invitation.ID,
		GroupID:      invitation.GroupID,
		InviteeID:    invitation.InviteeID,
		InviterID:    invitation.InviterID,
		Message:      invitation.Message,
		Status:       string(invitation.Status),
		ExpiresAt:    invitation.ExpiresAt.Format(time.RFC3339),
		CreatedAt:    invitation.CreatedAt.Format(time.RFC3339),
		RespondedAt:  formatOptionalTime(invitation.RespondedAt),
	}
}

func domainInvitationsToHTTP(invitations []*domain.Invitation) []InvitationResponse {
	result := make([]InvitationResponse, 0, len(invitations))
	for _, invitation := range invitations {
		result = append(result, domainInvitationToHTTP(invitation))
	}
	return result
}

func domainJoinRequestToHTTP(request *domain.JoinRequest) JoinRequestResponse {
	return JoinRequestResponse{
		RequestID:   request.ID,
		GroupID:     request.GroupID,
		UserID:      request.UserID,
		Message:     request.Message,
		Status:      string(request.Status),
		CreatedAt:   request.CreatedAt.Format(time.RFC3339),
		RespondedAt: formatOptionalTime(request.RespondedAt),
		ResponderID: request.ResponderID,
	}
}

func domainJoinRequestsToHTTP(requests []*domain.JoinRequest) []JoinRequestResponse {
	result := make([]JoinRequestResponse, 0, len(requests))
	for _, request := range requests {
		result = append(result, domainJoinRequestToHTTP(request))
	}
	return result
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
