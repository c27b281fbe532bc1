package repository

import (
	"context"
	"database/sql"

	"github.com/avagyan/studgroups/internal/domain"
)

type MembershipRepository interface {
	WithTx(tx *sql.Tx) MembershipRepository

	Create(ctx context.Context, membership *domain.Membership) error
	Delete(ctx context.Context, groupID, userID string) error
	GetByUserAndPlan(ctx context.Context, userID, planID string) (*domain.Membership, error)
	Exists(ctx context.Context, groupID, userID string) (bool, error)
	ListByGroup(ctx context.Context, groupID string) ([]*domain.Membership, error)
}
