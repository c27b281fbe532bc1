package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avagyan/studgroups/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupMockDBForService(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mockDB
}

func TestGroupService_CreateGroup(t *testing.T) {
	t.Run("успешное создание группы: лидер становится первым участником", func(t *testing.T) {
		db, mockDB := setupMockDBForService(t)
		mockGroupRepo := new(MockGroupRepository)
		mockMembershipRepo := new(MockMembershipRepository)

		service := NewGroupService(db, mockGroupRepo, mockMembershipRepo)
		ctx := context.Background()

		mockDB.ExpectBegin()
		mockMembershipRepo.On("GetByUserAndPlan", mock.Anything, "u1", "plan-1").
			Return(nil, errors.New("membership not found")).Once()
		mockGroupRepo.On("Create", mock.Anything, mock.MatchedBy(func(g *domain.Group) bool {
			return g.PlanID == "plan-1" &&
				g.LeaderID == "u1" &&
				g.MemberCount == 1 &&
				g.Capacity == domain.GroupCapacity &&
				g.Status == domain.GroupStatusOpen
		})).Return(nil).Once()
		mockMembershipRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.Membership) bool {
			return m.UserID == "u1" && m.PlanID == "plan-1"
		})).Return(nil).Once()
		mockDB.ExpectCommit()

		group, err := service.CreateGroup(ctx, "plan-1", "u1", "Team Rocket", "distributed systems")

		require.NoError(t, err)
		assert.Equal(t, "u1", group.LeaderID)
		assert.Equal(t, 1, group.MemberCount)
		assert.NotEmpty(t, group.ID)
		mockGroupRepo.AssertExpectations(t)
		mockMembershipRepo.AssertExpectations(t)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("ошибка: лидер уже состоит в группе этого плана", func(t *testing.T) {
		db, mockDB := setupMockDBForService(t)
		mockGroupRepo := new(MockGroupRepository)
		mockMembershipRepo := new(MockMembershipRepository)

		service := NewGroupService(db, mockGroupRepo, mockMembershipRepo)

		mockDB.ExpectBegin()
		mockMembershipRepo.On("GetByUserAndPlan", mock.Anything, "u1", "plan-1").
			Return(&domain.Membership{GroupID: "g-other", UserID: "u1", PlanID: "plan-1"}, nil).Once()
		mockDB.ExpectRollback()

		group, err := service.CreateGroup(context.Background(), "plan-1", "u1", "Team Rocket", "")

		require.Error(t, err)
		assert.Nil(t, group)
		assert.True(t, errors.Is(err, domain.ErrAlreadyInPlan))
		mockGroupRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ошибка: пустое имя группы", func(t *testing.T) {
		db, _ := setupMockDBForService(t)
		service := NewGroupService(db, new(MockGroupRepository), new(MockMembershipRepository))

		group, err := service.CreateGroup(context.Background(), "plan-1", "u1", "   ", "")

		require.Error(t, err)
		assert.Nil(t, group)
		assert.True(t, errors.Is(err, domain.NewValidationError("group name is required")))
	})
}

func TestGroupService_Leave(t *testing.T) {
	t.Run("успешный выход рядового участника", func(t *testing.T) {
		db, mockDB := setupMockDBForService(t)
		mockGroupRepo := new(MockGroupRepository)
		mockMembershipRepo := new(MockMembershipRepository)

		service := NewGroupService(db, mockGroupRepo, mockMembershipRepo)

		group := &domain.Group{
			ID:          "g1",
			PlanID:      "plan-1",
			LeaderID:    "u1",
			MemberCount: 3,
			Capacity:    4,
			Status:      domain.GroupStatusOpen,
		}

		mockDB.ExpectBegin()
		mockGroupRepo.On("GetByIDForUpdate", mock.Anything, "g1").Return(group, nil).Once()
		mockMembershipRepo.On("Exists", mock.Anything, "g1", "u2").Return(true, nil).Once()
		mockMembershipRepo.On("Delete", mock.Anything, "g1", "u2").Return(nil).Once()
		mockGroupRepo.On("UpdateMemberCount", mock.Anything, "g1", 2, domain.GroupStatusOpen).Return(nil).Once()
		mockDB.ExpectCommit()

		err := service.Leave(context.Background(), "g1", "u2")

		require.NoError(t, err)
		mockGroupRepo.AssertExpectations(t)
		mockMembershipRepo.AssertExpectations(t)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("выход из заполненной группы снова открывает её", func(t *testing.T) {
		db, mockDB := setupMockDBForService(t)
		mockGroupRepo := new(MockGroupRepository)
		mockMembershipRepo := new(MockMembershipRepository)

		service := NewGroupService(db, mockGroupRepo, mockMembershipRepo)

		group := &domain.Group{
			ID:          "g1",
			LeaderID:    "u1",
			MemberCount: 4,
			Capacity:    4,
			Status:      domain.GroupStatusFull,
		}

		mockDB.ExpectBegin()
		mockGroupRepo.On("GetByIDForUpdate", mock.Anything, "g1").Return(group, nil).Once()
		mockMembershipRepo.On("Exists", mock.Anything, "g1", "u3").Return(true, nil).Once()
		mockMembershipRepo.On("Delete", mock.Anything, "g1", "u3").Return(nil).Once()
		mockGroupRepo.On("UpdateMemberCount", mock.Anything, "g1", 3, domain.GroupStatusOpen).Return(nil).Once()
		mockDB.ExpectCommit()

		err := service.Leave(context.Background(), "g1", "u3")

		require.NoError(t, err)
		mockGroupRepo.AssertExpectations(t)
	})

	t.Run("ошибка: лидер непустой группы обязан сначала передать лидерство", func(t *testing.T) {
		db, mockDB := setupMockDBForService(t)
		mockGroupRepo := new(MockGroupRepository)
		mockMembershipRepo := new(MockMembershipRepository)

		service := NewGroupService(db, mockGroupRepo, mockMembershipRepo)

		group := &domain.Group{
			ID:          "g1",
			LeaderID:    "u1",
			MemberCount: 3,
			Capacity:    4,
			Status:      domain.GroupStatusOpen,
		}

		mockDB.ExpectBegin()
		mockGroupRepo.On("GetByIDForUpdate", mock.Anything, "g1").Return(group, nil).Once()
		mockMembershipRepo.On("Exists", mock.Anything, "g1", "u1").Return(true, nil).Once()
		mockDB.ExpectRollback()

		err := service.Leave(context.Background(), "g1", "u1")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMustTransferFirst))
		mockMembershipRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("последний участник распускает группу вместе с предложениями", func(t *testing.T) {
		db, mockDB := setupMockDBForService(t)
		mockGroupRepo := new(MockGroupRepository)
		mockMembershipRepo := new(MockMembershipRepository)

		service := NewGroupService(db, mockGroupRepo, mockMembershipRepo)

		group := &domain.Group{
			ID:          "g1",
			LeaderID:    "u1",
			MemberCount: 1,
			Capacity:    4,
			Status:      domain.GroupStatusOpen,
		}

		mockDB.ExpectBegin()
		mockGroupRepo.On("GetByIDForUpdate", mock.Anything, "g1").Return(group, nil).Once()
		mockMembershipRepo.On("Exists", mock.Anything, "g1", "u1").Return(true, nil).Once()
		mockMembershipRepo.On("Delete", mock.Anything, "g1", "u1").Return(nil).Once()
		mockGroupRepo.On("Delete", mock.Anything, "g1").Return(nil).Once()
		mockDB.ExpectCommit()

		err := service.Leave(context.Background(), "g1", "u1")

		require.NoError(t, err)
		mockGroupRepo.AssertExpectations(t)
		mockGroupRepo.AssertNotCalled(t, "UpdateMemberCount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ошибка: пользователь не состоит в группе", func(t *testing.T) {
		db, mockDB := setupMockDBForService(t)
		mockGroupRepo := new(MockGroupRepository)
		mockMembershipRepo := new(MockMembershipRepository)

		service := NewGroupService(db, mockGroupRepo, mockMembershipRepo)

		group := &domain.Group{ID: "g1", LeaderID: "u1", MemberCount: 2, Capacity: 4, Status: domain.GroupStatusOpen}

		mockDB.ExpectBegin()
		mockGroupRepo.On("GetByIDForUpdate", mock.Anything, "g1").Return(group, nil).Once()
		mockMembershipRepo.On("Exists", mock.Anything, "g1", "u9").Return(false, nil).Once()
		mockDB.ExpectRollback()

		err := service.Leave(context.Background(), "g1", "u9")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotMember))
	})

	t.Run("ошибка: состав заморожен после назначения темы", func(t *testing.T) {
		db, mockDB := setupMockDBForService(t)
		mockGroupRepo := new(MockGroupRepository)
		mockMembershipRepo := new(MockMembershipRepository)

		service := NewGroupService(db, mockGroupRepo, mockMembershipRepo)

		group := &domain.Group{ID: "g1", LeaderID: "u1", MemberCount: 3, Capacity: 4, Status: domain.GroupStatusHasTopic}

		mockDB.ExpectBegin()
		mockGroupRepo.On("GetByIDForUpdate", mock.Anything, "g1").Return(group, nil).Once()
		mockDB.ExpectRollback()

		err := service.Leave(context.Background(), "g1", "u2")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMembershipFrozen))
	})
}

func TestGroupService_TransferLeadership(t *testing.T) {
	t.Run("успешная передача лидерства участнику группы", func(t *testing.T) {
		db, mockDB := setupMockDBForService(t)
		mockGroupRepo := new(MockGroupRepository)
		mockMembershipRepo := new(MockMembershipRepository)

		service := NewGroupService(db, mockGroupRepo, mockMembershipRepo)

		group := &domain.Group{ID: "g1", LeaderID: "u1", MemberCount: 3, Capacity: 4, Status: domain.GroupStatusOpen}

		mockDB.ExpectBegin()
		mockGroupRepo.On("GetByIDForUpdate", mock.Anything, "g1").Return(group, nil).Once()
		mockMembershipRepo.On("Exists", mock.Anything, "g1", "u2").Return(true, nil).Once()
		mockGroupRepo.On("UpdateLeader", mock.Anything, "g1", "u1", "u2").Return(nil).Once()
		mockDB.ExpectCommit()

		err := service.TransferLeadership(context.Background(), "g1", "u1", "u2")

		require.NoError(t, err)
		mockGroupRepo.AssertExpectations(t)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("ошибка: актор не лидер", func(t *testing.T) {
		db, mockDB := setupMockDBForService(t)
		mockGroupRepo := new(MockGroupRepository)
		mockMembershipRepo := new(MockMembershipRepository)

		service := NewGroupService(db, mockGroupRepo, mockMembershipRepo)

		group := &domain.Group{ID: "g1", LeaderID: "u1", MemberCount: 3, Capacity: 4, Status: domain.GroupStatusOpen}

		mockDB.ExpectBegin()
		mockGroupRepo.On("GetByIDForUpdate", mock.Anything, "g1").Return(group, nil).Once()
		mockDB.ExpectRollback()

		err := service.TransferLeadership(context.Background(), "g1", "u2", "u3")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotLeader))
	})

	t.Run("ошибка: новый лидер не участник группы", func(t *testing.T) {
		db, mockDB := setupMockDBForService(t)
		mockGroupRepo := new(MockGroupRepository)
		mockMembershipRepo := new(MockMembershipRepository)

		service := NewGroupService(db, mockGroupRepo, mockMembershipRepo)

		group := &domain.Group{ID: "g1", LeaderID: "u1", MemberCount: 3, Capacity: 4, Status: domain.GroupStatusOpen}

		mockDB.ExpectBegin()
		mockGroupRepo.On("GetByIDForUpdate", mock.Anything, "g1").Return(group, nil).Once()
		mockMembershipRepo.On("Exists", mock.Anything, "g1", "u9").Return(false, nil).Once()
		mockDB.ExpectRollback()

		err := service.TransferLeadership(context.Background(), "g1", "u1", "u9")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotMember))
	})

	t.Run("ошибка: передача лидерства самому себе", func(t *testing.T) {
		db, _ := setupMockDBForService(t)
		service := NewGroupService(db, new(MockGroupRepository), new(MockMembershipRepository))

		err := service.TransferLeadership(context.Background(), "g1", "u1", "u1")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.NewValidationError("")))
	})

	t.Run("проигранная гонка двух передач возвращает конфликт", func(t *testing.T) {
		db, mockDB := setupMockDBForService(t)
		mockGroupRepo := new(MockGroupRepository)
		mockMembershipRepo := new(MockMembershipRepository)

		service := NewGroupService(db, mockGroupRepo, mockMembershipRepo)

		group := &domain.Group{ID: "g1", LeaderID: "u1", MemberCount: 3, Capacity: 4, Status: domain.GroupStatusOpen}

		mockDB.ExpectBegin()
		mockGroupRepo.On("GetByIDForUpdate", mock.Anything, "g1").Return(group, nil).Once()
		mockMembershipRepo.On("Exists", mock.Anything, "g1", "u2").Return(true, nil).Once()
		mockGroupRepo.On("UpdateLeader", mock.Anything, "g1", "u1", "u2").
			Return(errors.New("group leader changed")).Once()
		mockDB.ExpectRollback()

		err := service.TransferLeadership(context.Background(), "g1", "u1", "u2")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrStateConflict))
	})
}

func TestGroupService_AssignTopic(t *testing.T) {
	t.Run("назначение темы замораживает группу", func(t *testing.T) {
		db, mockDB := setupMockDBForService(t)
		mockGroupRepo := new(MockGroupRepository)

		service := NewGroupService(db, mockGroupRepo, new(MockMembershipRepository))

		group := &domain.Group{ID: "g1", LeaderID: "u1", MemberCount: 4, Capacity: 4, Status: domain.GroupStatusFull}

		mockDB.ExpectBegin()
		mockGroupRepo.On("GetByIDForUpdate", mock.Anything, "g1").Return(group, nil).Once()
		mockGroupRepo.On("UpdateStatus", mock.Anything, "g1", domain.GroupStatusHasTopic).Return(nil).Once()
		mockDB.ExpectCommit()

		err := service.AssignTopic(context.Background(), "g1")

		require.NoError(t, err)
		mockGroupRepo.AssertExpectations(t)
	})

	t.Run("повторное назначение темы идемпотентно", func(t *testing.T) {
		db, mockDB := setupMockDBForService(t)
		mockGroupRepo := new(MockGroupRepository)

		service := NewGroupService(db, mockGroupRepo, new(MockMembershipRepository))

		group := &domain.Group{ID: "g1", Status: domain.GroupStatusHasTopic, MemberCount: 4, Capacity: 4}

		mockDB.ExpectBegin()
		mockGroupRepo.On("GetByIDForUpdate", mock.Anything, "g1").Return(group, nil).Once()
		mockDB.ExpectCommit()

		err := service.AssignTopic(context.Background(), "g1")

		require.NoError(t, err)
		mockGroupRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}
