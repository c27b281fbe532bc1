package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avagyan/studgroups/internal/domain"
	"github.com/avagyan/studgroups/internal/repository"
)

type groupRepository struct {
	executor DBExecutor
}

func NewGroupRepository(db *sql.DB) *groupRepository {
	return &groupRepository{executor: db}
}

func (r *groupRepository) WithTx(tx *sql.Tx) repository.GroupRepository {
	return &groupRepository{executor: tx}
}

func (r *groupRepository) Create(ctx context.Context, group *domain.Group) error {
	query := `
		INSERT INTO groups (id, plan_id, name, description, leader_id, member_count, capacity, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	return r.executor.QueryRowContext(
		ctx,
		query,
		group.ID,
		group.PlanID,
		group.Name,
		group.Description,
		group.LeaderID,
		group.MemberCount,
		group.Capacity,
		group.Status,
		group.CreatedAt,
	).Scan(&group.CreatedAt)
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	query := `
		SELECT id, plan_id, name, description, leader_id, member_count, capacity, status, created_at
		FROM groups
		WHERE id = $1
	`

	return r.scanGroup(r.executor.QueryRowContext(ctx, query, id))
}

func (r *groupRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Group, error) {
	query := `
		SELECT id, plan_id, name, description, leader_id, member_count, capacity, status, created_at
		FROM groups
		WHERE id = $1
		FOR UPDATE
	`

	return r.scanGroup(r.executor.QueryRowContext(ctx, query, id))
}

func (r *groupRepository) ListByPlan(ctx context.Context, planID string) ([]*domain.Group, error) {
	query := `
		SELECT id, plan_id, name, description, leader_id, member_count, capacity, status, created_at
		FROM groups
		WHERE plan_id = $1
		ORDER BY created_at
	`

	rows, err := r.executor.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.Group
	for rows.Next() {
		group := &domain.Group{}
		err := rows.Scan(
			&group.ID,
			&group.PlanID,
			&group.Name,
			&group.Description,
			&group.LeaderID,
			&group.MemberCount,
			&group.Capacity,
			&group.Status,
			&group.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	return groups, rows.Err()
}

func (r *groupRepository) UpdateMemberCount(ctx context.Context, id string, memberCount int, status domain.GroupStatus) error {
	query := `
		UPDATE groups
		SET member_count = $2, status = $3
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(ctx, query, id, memberCount, status)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errors.New("group not found")
	}

	return nil
}

func (r *groupRepository) UpdateLeader(ctx context.Context, groupID, oldLeaderID, newLeaderID string) error {
	query := `
		UPDATE groups
		SET leader_id = $3
		WHERE id = $1 AND leader_id = $2
	`

	result, err := r.executor.ExecContext(ctx, query, groupID, oldLeaderID, newLeaderID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errors.New("group leader changed")
	}

	return nil
}

func (r *groupRepository) UpdateStatus(ctx context.Context, id string, status domain.GroupStatus) error {
	query := `
		UPDATE groups
		SET status = $2
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errors.New("group not found")
	}

	return nil
}

func (r *groupRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM groups WHERE id = $1`

	result, err := r.executor.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errors.New("group not found")
	}

	return nil
}

func (r *groupRepository) scanGroup(row *sql.Row) (*domain.Group, error) {
	group := &domain.Group{}
	err := row.Scan(
		&group.ID,
		&group.PlanID,
		&group.Name,
		&group.Description,
		&group.LeaderID,
		&group.MemberCount,
		&group.Capacity,
		&group.Status,
		&group.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("group not found")
		}
		return nil, err
	}

	return group, nil
}
