package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/avagyan/studgroups/internal/domain"
	"github.com/avagyan/studgroups/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockGroupRepository struct {
	mock.Mock
}

// WithTx в моках возвращает сам мок: тестам важна логика сервиса,
// а не то, через какой executor ушел запрос
func (m *MockGroupRepository) WithTx(tx *sql.Tx) repository.GroupRepository {
	return m
}

func (m *MockGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) ListByPlan(ctx context.Context, planID string) ([]*domain.Group, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) UpdateMemberCount(ctx context.Context, id string, memberCount int, status domain.GroupStatus) error {
	args := m.Called(ctx, id, memberCount, status)
	return args.Error(0)
}

func (m *MockGroupRepository) UpdateLeader(ctx context.Context, groupID, oldLeaderID, newLeaderID string) error {
	args := m.Called(ctx, groupID, oldLeaderID, newLeaderID)
	return args.Error(0)
}

func (m *MockGroupRepository) UpdateStatus(ctx context.Context, id string, status domain.GroupStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockGroupRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) WithTx(tx *sql.Tx) repository.MembershipRepository {
	return m
}

func (m *MockMembershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) Delete(ctx context.Context, groupID, userID string) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockMembershipRepository) GetByUserAndPlan(ctx context.Context, userID, planID string) (*domain.Membership, error) {
	args := m.Called(ctx, userID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) Exists(ctx context.Context, groupID, userID string) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipRepository) ListByGroup(ctx context.Context, groupID string) ([]*domain.Membership, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Membership), args.Error(1)
}

type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) WithTx(tx *sql.Tx) repository.InvitationRepository {
	return m
}

func (m *MockInvitationRepository) Create(ctx context.Context, invitation *domain.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockInvitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) CountPendingByGroup(ctx context.Context, groupID string, now time.Time) (int, error) {
	args := m.Called(ctx, groupID, now)
	return args.Int(0), args.Error(1)
}

func (m *MockInvitationRepository) HasPendingForInvitee(ctx context.Context, groupID, inviteeID string, now time.Time) (bool, error) {
	args := m.Called(ctx, groupID, inviteeID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvitationRepository) ListPendingByGroup(ctx context.Context, groupID string, now time.Time) ([]*domain.Invitation, error) {
	args := m.Called(ctx, groupID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) ListByInvitee(ctx context.Context, inviteeID, planID string) ([]*domain.Invitation, error) {
	args := m.Called(ctx, inviteeID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) UpdateStatus(ctx context.Context, id string, status domain.InvitationStatus, respondedAt time.Time) error {
	args := m.Called(ctx, id, status, respondedAt)
	return args.Error(0)
}

func (m *MockInvitationRepository) DeclineOtherPendingByInvitee(ctx context.Context, inviteeID, planID, excludeID string, respondedAt time.Time) error {
	args := m.Called(ctx, inviteeID, planID, excludeID, respondedAt)
	return args.Error(0)
}

type MockJoinRequestRepository struct {
	mock.Mock
}

func (m *MockJoinRequestRepository) WithTx(tx *sql.Tx) repository.JoinRequestRepository {
	return m
}

func (m *MockJoinRequestRepository) Create(ctx context.Context, request *domain.JoinRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) GetByID(ctx context.Context, id string) (*domain.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) CountPendingByGroup(ctx context.Context, groupID string) (int, error) {
	args := m.Called(ctx, groupID)
	return args.Int(0), args.Error(1)
}

func (m *MockJoinRequestRepository) HasPendingForUser(ctx context.Context, groupID, userID string) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJoinRequestRepository) ListPendingByGroup(ctx context.Context, groupID string) ([]*domain.JoinRequest, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) ListByUser(ctx context.Context, userID string) ([]*domain.JoinRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.JoinRequest), args.Error(1)
}

func (m *MockJoinRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.JoinRequestStatus, respondedAt time.Time, responderID string) error {
	args := m.Called(ctx, id, status, respondedAt, responderID)
	return args.Error(0)
}

func (m *MockJoinRequestRepository) CancelOtherPendingByUser(ctx context.Context, userID, planID, excludeID string, respondedAt time.Time) error {
	args := m.Called(ctx, userID, planID, excludeID, respondedAt)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, event domain.Event) {
	m.Called(ctx, event)
}
