package repository

import (
	"context"
	"database/sql"

	"github.com/avagyan/studgroups/internal/domain"
)

type GroupRepository interface {
	// WithTx возвращает копию репозитория, работающую внутри транзакции
	WithTx(tx *sql.Tx) GroupRepository

	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id string) (*domain.Group, error)
	// GetByIDForUpdate читает строку группы под SELECT ... FOR UPDATE.
	// Строка группы - точка сериализации всех конкурентных изменений состава.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Group, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Group, error)
	UpdateMemberCount(ctx context.Context, id string, memberCount int, status domain.GroupStatus) error
	// UpdateLeader - compare-and-swap по старому лидеру, чтобы два
	// конкурентных переноса не потеряли обновление
	UpdateLeader(ctx context.Context, groupID, oldLeaderID, newLeaderID string) error
	UpdateStatus(ctx context.Context, id string, status domain.GroupStatus) error
	Delete(ctx context.Context, id string) error
}
