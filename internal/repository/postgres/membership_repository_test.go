package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avagyan/studgroups/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMembershipRepo(t *testing.T) (*membershipRepository, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	return NewMembershipRepository(db), mock
}

func TestMembershipRepository_Create(t *testing.T) {
	t.Run("успешное создание участия", func(t *testing.T) {
		repo, mock := setupMembershipRepo(t)

		now := time.Now()
		membership := &domain.Membership{
			GroupID:  "g1",
			UserID:   "u5",
			PlanID:   "plan-1",
			JoinedAt: now,
		}

		rows := sqlmock.NewRows([]string{"joined_at"}).AddRow(now)
		mock.ExpectQuery("INSERT INTO memberships").
			WithArgs("g1", "u5", "plan-1", sqlmock.AnyArg()).
			WillReturnRows(rows)

		err := repo.Create(context.Background(), membership)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMembershipRepository_GetByUserAndPlan(t *testing.T) {
	t.Run("успешное получение участия", func(t *testing.T) {
		repo, mock := setupMembershipRepo(t)

		now := time.Now()
		rows := sqlmock.NewRows([]string{"group_id", "user_id", "plan_id", "joined_at"}).
			AddRow("g1", "u5", "plan-1", now)
		mock.ExpectQuery("SELECT group_id, user_id, plan_id, joined_at").
			WithArgs("u5", "plan-1").
			WillReturnRows(rows)

		membership, err := repo.GetByUserAndPlan(context.Background(), "u5", "plan-1")

		require.NoError(t, err)
		assert.Equal(t, "g1", membership.GroupID)
	})

	t.Run("пользователь не пристроен в плане", func(t *testing.T) {
		repo, mock := setupMembershipRepo(t)

		mock.ExpectQuery("SELECT group_id, user_id, plan_id, joined_at").
			WithArgs("u5", "plan-1").
			WillReturnError(sql.ErrNoRows)

		membership, err := repo.GetByUserAndPlan(context.Background(), "u5", "plan-1")

		require.Error(t, err)
		assert.Nil(t, membership)
		assert.Equal(t, "membership not found", err.Error())
	})
}

func TestMembershipRepository_Exists(t *testing.T) {
	t.Run("участие найдено", func(t *testing.T) {
		repo, mock := setupMembershipRepo(t)

		rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("g1", "u5").
			WillReturnRows(rows)

		exists, err := repo.Exists(context.Background(), "g1", "u5")

		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestMembershipRepository_Delete(t *testing.T) {
	t.Run("успешное удаление участия", func(t *testing.T) {
		repo, mock := setupMembershipRepo(t)

		mock.ExpectExec("DELETE FROM memberships").
			WithArgs("g1", "u5").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), "g1", "u5")

		require.NoError(t, err)
	})

	t.Run("ошибка: участия не было", func(t *testing.T) {
		repo, mock := setupMembershipRepo(t)

		mock.ExpectExec("DELETE FROM memberships").
			WithArgs("g1", "u5").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), "g1", "u5")

		require.Error(t, err)
		assert.Equal(t, "membership not found", err.Error())
	})
}

func TestMembershipRepository_ListByGroup(t *testing.T) {
	t.Run("участники группы в порядке вступления", func(t *testing.T) {
		repo, mock := setupMembershipRepo(t)

		now := time.Now()
		rows := sqlmock.NewRows([]string{"group_id", "user_id", "plan_id", "joined_at"}).
			AddRow("g1", "u1", "plan-1", now.Add(-time.Hour)).
			AddRow("g1", "u5", "plan-1", now)
		mock.ExpectQuery("SELECT group_id, user_id, plan_id, joined_at").
			WithArgs("g1").
			WillReturnRows(rows)

		memberships, err := repo.ListByGroup(context.Background(), "g1")

		require.NoError(t, err)
		require.Len(t, memberships, 2)
		assert.Equal(t, "u1", memberships[0].UserID)
		assert.Equal(t, "u5", memberships[1].UserID)
	})
}
