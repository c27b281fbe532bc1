package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/avagyan/studgroups/internal/domain"
	"github.com/avagyan/studgroups/internal/repository"
	"github.com/google/uuid"
)

type invitationService struct {
	db             *sql.DB
	groupRepo      repository.GroupRepository
	membershipRepo repository.MembershipRepository
	invitationRepo repository.InvitationRepository
	notifier       Notifier
}

// NewInvitationService создает новый экземпляр InvitationService
func NewInvitationService(
	db *sql.DB,
	groupRepo repository.GroupRepository,
	membershipRepo repository.MembershipRepository,
	invitationRepo repository.InvitationRepository,
	notifier Notifier,
) InvitationService {
	return &invitationService{
		db:             db,
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
		invitationRepo: invitationRepo,
		notifier:       notifier,
	}
}

// Invite выдает приглашение кандидату от имени лидера группы.
// Потолок Pending проверяется под блокировкой строки группы; вместимость
// здесь не проверяется - приглашений может быть больше свободных мест,
// места распределяются только в момент принятия.
func (s *invitationService) Invite(ctx context.Context, groupID, inviterID, inviteeID, message string) (*domain.Invitation, error) {
	if inviteeID == "" {
		return nil, domain.NewValidationError("invitee id is required")
	}
	if inviteeID == inviterID {
		return nil, domain.NewValidationError("cannot invite yourself")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	invitation, err := s.issueOne(ctx, tx, groupID, inviterID, inviteeID, message, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, domain.Event{
		Type:        domain.EventGroupInvitation,
		RecipientID: inviteeID,
		GroupID:     groupID,
		ActorID:     inviterID,
	})

	return invitation, nil
}

// InviteMany выдает приглашения списку кандидатов. Уже приглашенные и уже
// пристроенные пропускаются; весь пакет отклоняется, только если итоговое
// число Pending превысило бы потолок.
func (s *invitationService) InviteMany(ctx context.Context, groupID, inviterID string, inviteeIDs []string, message string) (*domain.BatchInviteResult, error) {
	if len(inviteeIDs) == 0 {
		return nil, domain.NewValidationError("invitee ids are required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	groups := s.groupRepo.WithTx(tx)
	memberships := s.membershipRepo.WithTx(tx)
	invitations := s.invitationRepo.WithTx(tx)

	now := time.Now()
	group, err := s.checkIssuePreconditions(ctx, groups, groupID, inviterID)
	if err != nil {
		return nil, err
	}

	result := &domain.BatchInviteResult{}
	seen := make(map[string]bool, len(inviteeIDs))
	var toCreate []string
	for _, inviteeID := range inviteeIDs {
		if inviteeID == "" || inviteeID == inviterID || seen[inviteeID] {
			result.Skipped = append(result.Skipped, inviteeID)
			continue
		}
		seen[inviteeID] = true

		placed, err := s.isPlacedInPlan(ctx, memberships, inviteeID, group.PlanID)
		if err != nil {
			return nil, err
		}
		if placed {
			result.Skipped = append(result.Skipped, inviteeID)
			continue
		}

		hasPending, err := invitations.HasPendingForInvitee(ctx, groupID, inviteeID, now)
		if err != nil {
			return nil, err
		}
		if hasPending {
			result.Skipped = append(result.Skipped, inviteeID)
			continue
		}

		toCreate = append(toCreate, inviteeID)
	}

	pendingCount, err := invitations.CountPendingByGroup(ctx, groupID, now)
	if err != nil {
		return nil, err
	}
	if pendingCount+len(toCreate) > domain.MaxPendingOffers {
		return nil, domain.ErrTooManyPending
	}

	for _, inviteeID := range toCreate {
		invitation := newInvitation(groupID, inviterID, inviteeID, message, now)
		if err := invitations.Create(ctx, invitation); err != nil {
			return nil, err
		}
		result.Created = append(result.Created, invitation)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	for _, invitation := range result.Created {
		s.notifier.Notify(ctx, domain.Event{
			Type:        domain.EventGroupInvitation,
			RecipientID: invitation.InviteeID,
			GroupID:     groupID,
			ActorID:     inviterID,
		})
	}

	return result, nil
}

// Cancel отзывает Pending приглашение. Доступно только лидеру группы.
func (s *invitationService) Cancel(ctx context.Context, groupID, invitationID, actorID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	groups := s.groupRepo.WithTx(tx)
	invitations := s.invitationRepo.WithTx(tx)

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

	invitation, err := invitations.GetByID(ctx, invitationID)
	if err != nil {
		if err.Error() == "invitation not found" {
			return domain.NewNotFoundError("invitation with id " + invitationID)
		}
		return err
	}

	if invitation.GroupID != groupID {
		return domain.NewNotFoundError("invitation with id " + invitationID)
	}

	if invitation.Status != domain.InvitationStatusPending {
		return domain.ErrOfferNotPending
	}

	if err := invitations.UpdateStatus(ctx, invitationID, domain.InvitationStatusCancelled, time.Now()); err != nil {
		if err.Error() == "invitation not pending" {
			return domain.ErrOfferNotPending
		}
		return err
	}

	return tx.Commit()
}

// ListForGroup получает Pending приглашения группы, просроченные отфильтрованы
func (s *invitationService) ListForGroup(ctx context.Context, groupID string) ([]*domain.Invitation, error) {
	return s.invitationRepo.ListPendingByGroup(ctx, groupID, time.Now())
}

// ListForUser получает все приглашения пользователя в рамках плана.
// Просроченные Pending строки отображаются как Expired, не переписывая базу.
func (s *invitationService) ListForUser(ctx context.Context, userID, planID string) ([]*domain.Invitation, error) {
	invitations, err := s.invitationRepo.ListByInvitee(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, invitation := range invitations {
		if invitation.Status == domain.InvitationStatusPending && invitation.IsExpired(now) {
			invitation.Status = domain.InvitationStatusExpired
		}
	}

	return invitations, nil
}

func (s *invitationService) issueOne(ctx context.Context, tx *sql.Tx, groupID, inviterID, inviteeID, message string, now time.Time) (*domain.Invitation, error) {
	groups := s.groupRepo.WithTx(tx)
	memberships := s.membershipRepo.WithTx(tx)
	invitations := s.invitationRepo.WithTx(tx)

	group, err := s.checkIssuePreconditions(ctx, groups, groupID, inviterID)
	if err != nil {
		return nil, err
	}

	placed, err := s.isPlacedInPlan(ctx, memberships, inviteeID, group.PlanID)
	if err != nil {
		return nil, err
	}
	if placed {
		return nil, domain.ErrAlreadyMember
	}

	hasPending, err := invitations.HasPendingForInvitee(ctx, groupID, inviteeID, now)
	if err != nil {
		return nil, err
	}
	if hasPending {
		return nil, domain.ErrDuplicateOffer
	}

	pendingCount, err := invitations.CountPendingByGroup(ctx, groupID, now)
	if err != nil {
		return nil, err
	}
	if pendingCount >= domain.MaxPendingOffers {
		return nil, domain.ErrTooManyPending
	}

	invitation := newInvitation(groupID, inviterID, inviteeID, message, now)
	if err := invitations.Create(ctx, invitation); err != nil {
		return nil, err
	}

	return invitation, nil
}

// checkIssuePreconditions проверяет группу и права под блокировкой её строки
func (s *invitationService) checkIssuePreconditions(ctx context.Context, groups repository.GroupRepository, groupID, inviterID string) (*domain.Group, error) {
	group, err := groups.GetByIDForUpdate(ctx, groupID)
	if err != nil {
		if err.Error() == "group not found" {
			return nil, domain.NewNotFoundError("group with id " + groupID)
		}
		return nil, err
	}

	if group.LeaderID != inviterID {
		return nil, domain.ErrNotLeader
	}
	if group.IsFrozen() {
		return nil, domain.ErrMembershipFrozen
	}
	if !group.IsOpen() {
		return nil, domain.ErrGroupNotOpen
	}

	return group, nil
}

func (s *invitationService) isPlacedInPlan(ctx context.Context, memberships repository.MembershipRepository, userID, planID string) (bool, error) {
	existing, err := memberships.GetByUserAndPlan(ctx, userID, planID)
	if err != nil && err.Error() != "membership not found" {
		return false, err
	}
	return existing != nil, nil
}

func newInvitation(groupID, inviterID, inviteeID, message string, now time.Time) *domain.Invitation {
	return &domain.Invitation{
		ID:        uuid.NewString(),
		GroupID:   groupID,
		InviteeID: inviteeID,
		InviterID: inviterID,
		Message:   message,
		Status:    domain.InvitationStatusPending,
		ExpiresAt: now.Add(domain.InvitationTTL),
		CreatedAt: now,
	}
}
