package service

import (
	"context"

	"github.com/avagyan/studgroups/internal/domain"
)

type InvitationService interface {
	Invite(ctx context.Context, groupID, inviterID, inviteeID, message string) (*domain.Invitation, error)
	InviteMany(ctx context.Context, groupID, inviterID string, inviteeIDs []string, message string) (*domain.BatchInviteResult, error)
	Cancel(ctx context.Context, groupID, invitationID, actorID string) error
	ListForGroup(ctx context.Context, groupID string) ([]*domain.Invitation, error)
	ListForUser(ctx context.Context, userID, planID string) ([]*domain.Invitation, error)
}
