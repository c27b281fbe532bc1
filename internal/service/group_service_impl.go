package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/avagyan/studgroups/internal/domain"
	"github.com/avagyan/studgroups/internal/repository"
	"github.com/google/uuid"
)

type groupService struct {
	db             *sql.DB
	groupRepo      repository.GroupRepository
	membershipRepo repository.MembershipRepository
}

// NewGroupService создает новый экземпляр GroupService
func NewGroupService(
	db *sql.DB,
	groupRepo repository.GroupRepository,
	membershipRepo repository.MembershipRepository,
) GroupService {
	return &groupService{
		db:             db,
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
	}
}

// CreateGroup создает группу и делает лидера её первым участником
// в одной транзакции
func (s *groupService) CreateGroup(ctx context.Context, planID, leaderID, name, description string) (*domain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("group name is required")
	}
	if planID == "" {
		return nil, domain.NewValidationError("plan id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	memberships := s.membershipRepo.WithTx(tx)
	groups := s.groupRepo.WithTx(tx)

	existing, err := memberships.GetByUserAndPlan(ctx, leaderID, planID)
	if err != nil && err.Error() != "membership not found" {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyInPlan
	}

	now := time.Now()
	group := &domain.Group{
		ID:          uuid.NewString(),
		PlanID:      planID,
		Name:        name,
		Description: description,
		LeaderID:    leaderID,
		MemberCount: 1,
		Capacity:    domain.GroupCapacity,
		Status:      domain.GroupStatusOpen,
		CreatedAt:   now,
	}

	if err := groups.Create(ctx, group); err != nil {
		return nil, err
	}

	membership := &domain.Membership{
		GroupID:  group.ID,
		UserID:   leaderID,
		PlanID:   planID,
		JoinedAt: now,
	}
	if err := memberships.Create(ctx, membership); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyInPlan
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return group, nil
}

// GetGroup получает группу по id
func (s *groupService) GetGroup(ctx context.Context, groupID string) (*domain.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if err.Error() == "group not found" {
			return nil, domain.NewNotFoundError("group with id " + groupID)
		}
		return nil, err
	}

	return group, nil
}

// ListGroups получает все группы плана
func (s *groupService) ListGroups(ctx context.Context, planID string) ([]*domain.Group, error) {
	return s.groupRepo.ListByPlan(ctx, planID)
}

// ListMembers получает участников группы
func (s *groupService) ListMembers(ctx context.Context, groupID string) ([]*domain.Membership, error) {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.membershipRepo.ListByGroup(ctx, groupID)
}

// Leave выводит пользователя из группы. Лидер непустой группы обязан
// сначала передать лидерство. Последний участник распускает группу:
// она удаляется вместе со всеми её предложениями.
func (s *groupService) Leave(ctx context.Context, groupID, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	groups := s.groupRepo.WithTx(tx)
	memberships := s.membershipRepo.WithTx(tx)

	group, err := groups.GetByIDForUpdate(ctx, groupID)
	if err != nil {
		if err.Error() == "group not found" {
			return domain.NewNotFoundError("group with id " + groupID)
		}
		return err
	}

	if group.IsFrozen() {
		return domain.ErrMembershipFrozen
	}

	isMember, err := memberships.Exists(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return domain.ErrNotMember
	}

	if userID == group.LeaderID && group.MemberCount > 1 {
		return domain.ErrMustTransferFirst
	}

	if err := memberships.Delete(ctx, groupID, userID); err != nil {
		return err
	}

	newCount := group.MemberCount - 1
	if newCount == 0 {
		// FK ON DELETE CASCADE удаляет участия и все предложения группы
		if err := groups.Delete(ctx, groupID); err != nil {
			return err
		}
		return tx.Commit()
	}

	status := group.Status
	if status == domain.GroupStatusFull && newCount < group.Capacity {
		status = domain.GroupStatusOpen
	}
	if err := groups.UpdateMemberCount(ctx, groupID, newCount, status); err != nil {
		return err
	}

	return tx.Commit()
}

// TransferLeadership передает лидерство другому участнику группы
func (s *groupService) TransferLeadership(ctx context.Context, groupID, actorID, newLeaderID string) error {
	if newLeaderID == actorID {
		return domain.NewValidationError("new leader must be a different user")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	groups := s.groupRepo.WithTx(tx)
	memberships := s.membershipRepo.WithTx(tx)

	group, err := groups.GetByIDForUpdate(ctx, groupID)
	if err != nil {
		if err.Error() == "group not found" {
			return domain.NewNotFoundError("group with id " + groupID)
		}
		return err
	}

	if group.LeaderID != actorID {
		return domain.ErrNotLeader
	}

	isMember, err := memberships.Exists(ctx, groupID, newLeaderID)
	if err != nil {
		return err
	}
	if !isMember {
		return domain.ErrNotMember
	}

	if err := groups.UpdateLeader(ctx, groupID, actorID, newLeaderID); err != nil {
		if err.Error() == "group leader changed" {
			return domain.ErrStateConflict
		}
		return err
	}

	return tx.Commit()
}

// AssignTopic помечает группу как получившую тему: состав замораживается.
// Сигнал приходит от внешней подсистемы распределения тем, идемпотентен.
func (s *groupService) AssignTopic(ctx context.Context, groupID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	groups := s.groupRepo.WithTx(tx)

	group, err := groups.GetByIDForUpdate(ctx, groupID)
	if err != nil {
		if err.Error() == "group not found" {
			return domain.NewNotFoundError("group with id " + groupID)
		}
		return err
	}

	if group.IsFrozen() {
		return tx.Commit()
	}

	if err := groups.UpdateStatus(ctx, groupID, domain.GroupStatusHasTopic); err != nil {
		return err
	}

	return tx.Commit()
}
