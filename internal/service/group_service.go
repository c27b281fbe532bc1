package service

import (
	"context"

	"github.com/avagyan/studgroups/internal/domain"
)

type GroupService interface {
	CreateGroup(ctx context.Context, planID, leaderID, name, description string) (*domain.Group, error)
	GetGroup(ctx context.Context, groupID string) (*domain.Group, error)
	ListGroups(ctx context.Context, planID string) ([]*domain.Group, error)
	ListMembers(ctx context.Context, groupID string) ([]*domain.Membership, error)
	Leave(ctx context.Context, groupID, userID string) error
	TransferLeadership(ctx context.Context, groupID, actorID, newLeaderID string) error
	AssignTopic(ctx context.Context, groupID string) error
}
