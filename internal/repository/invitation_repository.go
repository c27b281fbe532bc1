package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/avagyan/studgroups/internal/domain"
)

type InvitationRepository interface {
	WithTx(tx *sql.Tx) InvitationRepository

	Create(ctx context.Context, invitation *domain.Invitation) error
	GetByID(ctx context.Context, id string) (*domain.Invitation, error)
	// CountPendingByGroup считает Pending приглашения группы,
	// просроченные не учитываются (ленивое истечение)
	CountPendingByGroup(ctx context.Context, groupID string, now time.Time) (int, error)
	HasPendingForInvitee(ctx context.Context, groupID, inviteeID string, now time.Time) (bool, error)
	ListPendingByGroup(ctx context.Context, groupID string, now time.Time) ([]*domain.Invitation, error)
	ListByInvitee(ctx context.Context, inviteeID, planID string) ([]*domain.Invitation, error)
	UpdateStatus(ctx context.Context, id string, status domain.InvitationStatus, respondedAt time.Time) error
	// DeclineOtherPendingByInvitee каскадно отклоняет остальные Pending
	// приглашения кандидата в рамках плана (кроме принятого)
	DeclineOtherPendingByInvitee(ctx context.Context, inviteeID, planID, excludeID string, respondedAt time.Time) error
}
