package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avagyan/studgroups/internal/domain"
	"github.com/avagyan/studgroups/internal/repository"
)

type membershipRepository struct {
	executor DBExecutor
}

func NewMembershipRepository(db *sql.DB) *membershipRepository {
	return &membershipRepository{executor: db}
}

func (r *membershipRepository) WithTx(tx *sql.Tx) repository.MembershipRepository {
	return &membershipRepository{executor: tx}
}

func (r *membershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	query := `
		INSERT INTO memberships (group_id, user_id, plan_id, joined_at)
		VALUES ($1, $2, $3, $4)
		RETURNING joined_at
	`

	return r.executor.QueryRowContext(
		ctx,
		query,
		membership.GroupID,
		membership.UserID,
		membership.PlanID,
		membership.JoinedAt,
	).Scan(&membership.JoinedAt)
}

func (r *membershipRepository) Delete(ctx context.Context, groupID, userID string) error {
	query := `DELETE FROM memberships WHERE group_id = $1 AND user_id = $2`

	result, err := r.executor.ExecContext(ctx, query, groupID, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errors.New("membership not found")
	}

	return nil
}

func (r *membershipRepository) GetByUserAndPlan(ctx context.Context, userID, planID string) (*domain.Membership, error) {
	query := `
		SELECT group_id, user_id, plan_id, joined_at
		FROM memberships
		WHERE user_id = $1 AND plan_id = $2
	`

	membership := &domain.Membership{}
	err := r.executor.QueryRowContext(ctx, query, userID, planID).Scan(
		&membership.GroupID,
		&membership.UserID,
		&membership.PlanID,
		&membership.JoinedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("membership not found")
		}
		return nil, err
	}

	return membership, nil
}

func (r *membershipRepository) Exists(ctx context.Context, groupID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM memberships WHERE group_id = $1 AND user_id = $2
		)
	`

	var exists bool
	err := r.executor.QueryRowContext(ctx, query, groupID, userID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *membershipRepository) ListByGroup(ctx context.Context, groupID string) ([]*domain.Membership, error) {
	query := `
		SELECT group_id, user_id, plan_id, joined_at
		FROM memberships
		WHERE group_id = $1
		ORDER BY joined_at
	`

	rows, err := r.executor.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []*domain.Membership
	for rows.Next() {
		membership := &domain.Membership{}
		err := rows.Scan(
			&membership.GroupID,
			&membership.UserID,
			&membership.PlanID,
			&membership.JoinedAt,
		)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, membership)
	}

	return memberships, rows.Err()
}
