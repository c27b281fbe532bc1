package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/avagyan/studgroups/internal/domain"
	"github.com/avagyan/studgroups/internal/repository"
)

type acceptanceService struct {
	db              *sql.DB
	groupRepo       repository.GroupRepository
	membershipRepo  repository.MembershipRepository
	invitationRepo  repository.InvitationRepository
	joinRequestRepo repository.JoinRequestRepository
	notifier        Notifier
}

// NewAcceptanceService создает новый экземпляр AcceptanceService
func NewAcceptanceService(
	db *sql.DB,
	groupRepo repository.GroupRepository,
	membershipRepo repository.MembershipRepository,
	invitationRepo repository.InvitationRepository,
	joinRequestRepo repository.JoinRequestRepository,
	notifier Notifier,
) AcceptanceService {
	return &acceptanceService{
		db:              db,
		groupRepo:       groupRepo,
		membershipRepo:  membershipRepo,
		invitationRepo:  invitationRepo,
		joinRequestRepo: joinRequestRepo,
		notifier:        notifier,
	}
}

// RespondToInvitation - ответ кандидата на приглашение. Принятие проходит
// через транзакцию с блокировкой строки группы, отклонение - обычный переход
// Pending -> Declined без эскалации блокировок.
func (s *acceptanceService) RespondToInvitation(ctx context.Context, invitationID, actorID string, accept bool) error {
	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if err.Error() == "invitation not found" {
			return domain.NewNotFoundError("invitation with id " + invitationID)
		}
		return err
	}

	if invitation.InviteeID != actorID {
		return domain.ErrForbidden
	}

	if !accept {
		return s.declineInvitation(ctx, invitation, actorID)
	}

	return s.acceptInvitation(ctx, invitation.GroupID, invitationID, actorID)
}

// RespondToJoinRequest - ответ лидера на заявку. Принятие проходит через
// ту же транзакцию с блокировкой строки группы.
func (s *acceptanceService) RespondToJoinRequest(ctx context.Context, groupID, requestID, actorID string, accept bool) error {
	request, err := s.joinRequestRepo.GetByID(ctx, requestID)
	if err != nil {
		if err.Error() == "join request not found" {
			return domain.NewNotFoundError("join request with id " + requestID)
		}
		return err
	}
	if request.GroupID != groupID {
		return domain.NewNotFoundError("join request with id " + requestID)
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if err.Error() == "group not found" {
			return domain.NewNotFoundError("group with id " + groupID)
		}
		return err
	}

	if group.LeaderID != actorID {
		return domain.ErrNotLeader
	}

	if !accept {
		return s.declineJoinRequest(ctx, request, actorID)
	}

	return s.acceptJoinRequest(ctx, groupID, requestID, actorID)
}

// acceptInvitation выполняет критическую секцию принятия приглашения:
// блокировка строки группы, перепроверка всех условий, создание участия
// и каскадное снятие остальных предложений кандидата - одним коммитом.
func (s *acceptanceService) acceptInvitation(ctx context.Context, groupID, invitationID, actorID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	groups := s.groupRepo.WithTx(tx)
	memberships := s.membershipRepo.WithTx(tx)
	invitations := s.invitationRepo.WithTx(tx)
	joinRequests := s.joinRequestRepo.WithTx(tx)

	group, err := groups.GetByIDForUpdate(ctx, groupID)
	if err != nil {
		// группа могла быть распущена между чтением и блокировкой
		if err.Error() == "group not found" {
			return domain.ErrStateConflict
		}
		return err
	}

	invitation, err := invitations.GetByID(ctx, invitationID)
	if err != nil {
		if err.Error() == "invitation not found" {
			return domain.ErrStateConflict
		}
		return err
	}

	if invitation.Status != domain.InvitationStatusPending {
		return domain.ErrStateConflict
	}

	now := time.Now()
	if invitation.IsExpired(now) {
		return s.rejectOffer(ctx, tx, func() error {
			return invitations.UpdateStatus(ctx, invitationID, domain.InvitationStatusExpired, now)
		})
	}

	if !group.IsOpen() || group.MemberCount >= group.Capacity {
		return s.rejectOffer(ctx, tx, func() error {
			return invitations.UpdateStatus(ctx, invitationID, domain.InvitationStatusDeclined, now)
		})
	}

	placed, err := s.hasMembershipInPlan(ctx, memberships, invitation.InviteeID, group.PlanID)
	if err != nil {
		return err
	}
	if placed {
		return s.rejectOffer(ctx, tx, func() error {
			return invitations.UpdateStatus(ctx, invitationID, domain.InvitationStatusDeclined, now)
		})
	}

	membership := &domain.Membership{
		GroupID:  groupID,
		UserID:   invitation.InviteeID,
		PlanID:   group.PlanID,
		JoinedAt: now,
	}
	if err := memberships.Create(ctx, membership); err != nil {
		// гонка между группами: уникальный индекс (plan_id, user_id) сработал
		if isUniqueViolation(err) {
			return domain.ErrStateConflict
		}
		return err
	}

	if err := s.fillSeat(ctx, groups, group); err != nil {
		return err
	}

	if err := invitations.UpdateStatus(ctx, invitationID, domain.InvitationStatusAccepted, now); err != nil {
		return err
	}

	if err := invitations.DeclineOtherPendingByInvitee(ctx, invitation.InviteeID, group.PlanID, invitationID, now); err != nil {
		return err
	}
	if err := joinRequests.CancelOtherPendingByUser(ctx, invitation.InviteeID, group.PlanID, invitationID, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.notifier.Notify(ctx, domain.Event{
		Type:        domain.EventInvitationAccepted,
		RecipientID: invitation.InviterID,
		GroupID:     groupID,
		ActorID:     actorID,
	})

	return nil
}

func (s *acceptanceService) acceptJoinRequest(ctx context.Context, groupID, requestID, actorID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	groups := s.groupRepo.WithTx(tx)
	memberships := s.membershipRepo.WithTx(tx)
	invitations := s.invitationRepo.WithTx(tx)
	joinRequests := s.joinRequestRepo.WithTx(tx)

	group, err := groups.GetByIDForUpdate(ctx, groupID)
	if err != nil {
		if err.Error() == "group not found" {
			return domain.ErrStateConflict
		}
		return err
	}

	// лидерство могло перейти к другому участнику, пока брали блокировку
	if group.LeaderID != actorID {
		return domain.ErrNotLeader
	}

	request, err := joinRequests.GetByID(ctx, requestID)
	if err != nil {
		if err.Error() == "join request not found" {
			return domain.ErrStateConflict
		}
		return err
	}

	if request.Status != domain.JoinRequestStatusPending {
		return domain.ErrStateConflict
	}

	now := time.Now()
	if !group.IsOpen() || group.MemberCount >= group.Capacity {
		return s.rejectOffer(ctx, tx, func() error {
			return joinRequests.UpdateStatus(ctx, requestID, domain.JoinRequestStatusDeclined, now, actorID)
		})
	}

	placed, err := s.hasMembershipInPlan(ctx, memberships, request.UserID, group.PlanID)
	if err != nil {
		return err
	}
	if placed {
		return s.rejectOffer(ctx, tx, func() error {
			return joinRequests.UpdateStatus(ctx, requestID, domain.JoinRequestStatusDeclined, now, actorID)
		})
	}

	membership := &domain.Membership{
		GroupID:  groupID,
		UserID:   request.UserID,
		PlanID:   group.PlanID,
		JoinedAt: now,
	}
	if err := memberships.Create(ctx, membership); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrStateConflict
		}
		return err
	}

	if err := s.fillSeat(ctx, groups, group); err != nil {
		return err
	}

	if err := joinRequests.UpdateStatus(ctx, requestID, domain.JoinRequestStatusAccepted, now, actorID); err != nil {
		return err
	}

	if err := invitations.DeclineOtherPendingByInvitee(ctx, request.UserID, group.PlanID, requestID, now); err != nil {
		return err
	}
	if err := joinRequests.CancelOtherPendingByUser(ctx, request.UserID, group.PlanID, requestID, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.notifier.Notify(ctx, domain.Event{
		Type:        domain.EventInvitationAccepted,
		RecipientID: request.UserID,
		GroupID:     groupID,
		ActorID:     actorID,
	})

	return nil
}

func (s *acceptanceService) declineInvitation(ctx context.Context, invitation *domain.Invitation, actorID string) error {
	if invitation.Status != domain.InvitationStatusPending {
		return domain.ErrOfferNotPending
	}

	err := s.invitationRepo.UpdateStatus(ctx, invitation.ID, domain.InvitationStatusDeclined, time.Now())
	if err != nil {
		if err.Error() == "invitation not pending" {
			return domain.ErrOfferNotPending
		}
		return err
	}

	s.notifier.Notify(ctx, domain.Event{
		Type:        domain.EventInvitationDeclined,
		RecipientID: invitation.InviterID,
		GroupID:     invitation.GroupID,
		ActorID:     actorID,
	})

	return nil
}

func (s *acceptanceService) declineJoinRequest(ctx context.Context, request *domain.JoinRequest, actorID string) error {
	if request.Status != domain.JoinRequestStatusPending {
		return domain.ErrOfferNotPending
	}

	err := s.joinRequestRepo.UpdateStatus(ctx, request.ID, domain.JoinRequestStatusDeclined, time.Now(), actorID)
	if err != nil {
		if err.Error() == "join request not pending" {
			return domain.ErrOfferNotPending
		}
		return err
	}

	s.notifier.Notify(ctx, domain.Event{
		Type:        domain.EventInvitationDeclined,
		RecipientID: request.UserID,
		GroupID:     request.GroupID,
		ActorID:     actorID,
	})

	return nil
}

// rejectOffer фиксирует терминальный статус проигравшего предложения
// и возвращает StateConflict. Переход коммитится: повторный ответ по этому
// предложению уже не пройдет перепроверку.
func (s *acceptanceService) rejectOffer(ctx context.Context, tx *sql.Tx, markTerminal func() error) error {
	if err := markTerminal(); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return domain.ErrStateConflict
}

func (s *acceptanceService) hasMembershipInPlan(ctx context.Context, memberships repository.MembershipRepository, userID, planID string) (bool, error) {
	existing, err := memberships.GetByUserAndPlan(ctx, userID, planID)
	if err != nil && err.Error() != "membership not found" {
		return false, err
	}
	return existing != nil, nil
}

// fillSeat увеличивает счетчик участников и переводит группу в Full
// при достижении вместимости
func (s *acceptanceService) fillSeat(ctx context.Context, groups repository.GroupRepository, group *domain.Group) error {
	newCount := group.MemberCount + 1
	status := group.Status
	if newCount >= group.Capacity {
		status = domain.GroupStatusFull
	}
	return groups.UpdateMemberCount(ctx, group.ID, newCount, status)
}
