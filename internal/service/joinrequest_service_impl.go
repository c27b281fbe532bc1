package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/avagyan/studgroups/internal/domain"
	"github.com/avagyan/studgroups/internal/repository"
	"github.com/google/uuid"
)

type joinRequestService struct {
	db              *sql.DB
	groupRepo       repository.GroupRepository
	membershipRepo  repository.MembershipRepository
	joinRequestRepo repository.JoinRequestRepository
	notifier        Notifier
}

// NewJoinRequestService создает новый экземпляр JoinRequestService
func NewJoinRequestService(
	db *sql.DB,
	groupRepo repository.GroupRepository,
	membershipRepo repository.MembershipRepository,
	joinRequestRepo repository.JoinRequestRepository,
	notifier Notifier,
) JoinRequestService {
	return &joinRequestService{
		db:              db,
		groupRepo:       groupRepo,
		membershipRepo:  membershipRepo,
		joinRequestRepo: joinRequestRepo,
		notifier:        notifier,
	}
}

// Request подает заявку на вступление в группу. Потолок Pending заявок
// проверяется под блокировкой строки группы.
func (s *joinRequestService) Request(ctx context.Context, groupID, userID, message string) (*domain.JoinRequest, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	groups := s.groupRepo.WithTx(tx)
	memberships := s.membershipRepo.WithTx(tx)
	requests := s.joinRequestRepo.WithTx(tx)

	group, err := groups.GetByIDForUpdate(ctx, groupID)
	if err != nil {
		if err.Error() == "group not found" {
			return nil, domain.NewNotFoundError("group with id " + groupID)
		}
		return nil, err
	}

	if group.IsFrozen() {
		return nil, domain.ErrMembershipFrozen
	}
	if !group.IsOpen() {
		return nil, domain.ErrGroupNotOpen
	}

	existing, err := memberships.GetByUserAndPlan(ctx, userID, group.PlanID)
	if err != nil && err.Error() != "membership not found" {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyMember
	}

	hasPending, err := requests.HasPendingForUser(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if hasPending {
		return nil, domain.ErrDuplicateOffer
	}

	pendingCount, err := requests.CountPendingByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if pendingCount >= domain.MaxPendingOffers {
		return nil, domain.ErrTooManyPending
	}

	request := &domain.JoinRequest{
		ID:        uuid.NewString(),
		GroupID:   groupID,
		UserID:    userID,
		Message:   message,
		Status:    domain.JoinRequestStatusPending,
		CreatedAt: time.Now(),
	}
	if err := requests.Create(ctx, request); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, domain.Event{
		Type:        domain.EventJoinRequestReceived,
		RecipientID: group.LeaderID,
		GroupID:     groupID,
		ActorID:     userID,
	})

	return request, nil
}

// Cancel отзывает Pending заявку. Доступно только её автору.
func (s *joinRequestService) Cancel(ctx context.Context, requestID, actorID string) error {
	request, err := s.joinRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		if err.Error() == "join request not found" {
			return domain.NewNotFoundError("join request with id " + requestID)
		}
		return err
	}

	if request.UserID != actorID {
		return domain.ErrNotRequester
	}

	if request.Status != domain.JoinRequestStatusPending {
		return domain.ErrOfferNotPending
	}

	// UPDATE с условием status=PENDING атомарен, блокировка группы не нужна:
	// отзыв только уменьшает счетчик Pending
	err = s.joinRequestRepo.UpdateStatus(ctx, requestID, domain.JoinRequestStatusCancelled, time.Now(), actorID)
	if err != nil {
		if err.Error() == "join request not pending" {
			return domain.ErrOfferNotPending
		}
		return err
	}

	return nil
}

// ListForGroup получает Pending заявки группы
func (s *joinRequestService) ListForGroup(ctx context.Context, groupID string) ([]*domain.JoinRequest, error) {
	return s.joinRequestRepo.ListPendingByGroup(ctx, groupID)
}

// ListForUser получает все заявки пользователя
func (s *joinRequestService) ListForUser(ctx context.Context, userID string) ([]*domain.JoinRequest, error) {
	return s.joinRequestRepo.ListByUser(ctx, userID)
}
