package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/avagyan/studgroups/internal/domain"
)

type JoinRequestRepository interface {
	WithTx(tx *sql.Tx) JoinRequestRepository

	Create(ctx context.Context, request *domain.JoinRequest) error
	GetByID(ctx context.Context, id string) (*domain.JoinRequest, error)
	CountPendingByGroup(ctx context.Context, groupID string) (int, error)
	HasPendingForUser(ctx context.Context, groupID, userID string) (bool, error)
	ListPendingByGroup(ctx context.Context, groupID string) ([]*domain.JoinRequest, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.JoinRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.JoinRequestStatus, respondedAt time.Time, responderID string) error
	// CancelOtherPendingByUser каскадно снимает остальные Pending заявки
	// кандидата в рамках плана (кроме принятой)
	CancelOtherPendingByUser(ctx context.Context, userID, planID, excludeID string, respondedAt time.Time) error
}
