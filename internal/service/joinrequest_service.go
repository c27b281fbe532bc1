package service

import (
	"context"

	"github.com/avagyan/studgroups/internal/domain"
)

type JoinRequestService interface {
	Request(ctx context.Context, groupID, userID, message string) (*domain.JoinRequest, error)
	Cancel(ctx context.Context, requestID, actorID string) error
	ListForGroup(ctx context.Context, groupID string) ([]*domain.JoinRequest, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.JoinRequest, error)
}
