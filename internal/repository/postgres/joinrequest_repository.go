package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/avagyan/studgroups/internal/domain"
	"github.com/avagyan/studgroups/internal/repository"
)

type joinRequestRepository struct {
	executor DBExecutor
}

func NewJoinRequestRepository(db *sql.DB) *joinRequestRepository {
	return &joinRequestRepository{executor: db}
}

func (r *joinRequestRepository) WithTx(tx *sql.Tx) repository.JoinRequestRepository {
	return &joinRequestRepository{executor: tx}
}

func (r *joinRequestRepository) Create(ctx context.Context, request *domain.JoinRequest) error {
	query := `
		INSERT INTO join_requests (id, group_id, user_id, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	return r.executor.QueryRowContext(
		ctx,
		query,
		request.ID,
		request.GroupID,
		request.UserID,
		request.Message,
		request.Status,
		request.CreatedAt,
	).Scan(&request.CreatedAt)
}

func (r *joinRequestRepository) GetByID(ctx context.Context, id string) (*domain.JoinRequest, error) {
	query := `
		SELECT id, group_id, user_id, message, status, created_at, responded_at, responder_id
		FROM join_requests
		WHERE id = $1
	`

	request := &domain.JoinRequest{}
	var respondedAt sql.NullTime
	var responderID sql.NullString
	err := r.executor.QueryRowContext(ctx, query, id).Scan(
		&request.ID,
		&request.GroupID,
		&request.UserID,
		&request.Message,
		&request.Status,
		&request.CreatedAt,
		&respondedAt,
		&responderID,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("join request not found")
		}
		return nil, err
	}

	if respondedAt.Valid {
		request.RespondedAt = &respondedAt.Time
	}
	if responderID.Valid {
		request.ResponderID = &responderID.String
	}

	return request, nil
}

func (r *joinRequestRepository) CountPendingByGroup(ctx context.Context, groupID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM join_requests
		WHERE group_id = $1 AND status = $2
	`

	var count int
	err := r.executor.QueryRowContext(ctx, query, groupID, domain.JoinRequestStatusPending).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *joinRequestRepository) HasPendingForUser(ctx context.Context, groupID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM join_requests
			WHERE group_id = $1 AND user_id = $2 AND status = $3
		)
	`

	var exists bool
	err := r.executor.QueryRowContext(ctx, query, groupID, userID, domain.JoinRequestStatusPending).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *joinRequestRepository) ListPendingByGroup(ctx context.Context, groupID string) ([]*domain.JoinRequest, error) {
	query := `
		SELECT id, group_id, user_id, message, status, created_at, responded_at, responder_id
		FROM join_requests
		WHERE group_id = $1 AND status = $2
		ORDER BY created_at
	`

	rows, err := r.executor.QueryContext(ctx, query, groupID, domain.JoinRequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJoinRequests(rows)
}

func (r *joinRequestRepository) ListByUser(ctx context.Context, userID string) ([]*domain.JoinRequest, error) {
	query := `
		SELECT id, group_id, user_id, message, status, created_at, responded_at, responder_id
		FROM join_requests
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.executor.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJoinRequests(rows)
}

func (r *joinRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.JoinRequestStatus, respondedAt time.Time, responderID string) error {
	query := `
		UPDATE join_requests
		SET status = $2, responded_at = $3, responder_id = $4
		WHERE id = $1 AND status = $5
	`

	result, err := r.executor.ExecContext(ctx, query, id, status, respondedAt, responderID, domain.JoinRequestStatusPending)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errors.New("join request not pending")
	}

	return nil
}

func (r *joinRequestRepository) CancelOtherPendingByUser(ctx context.Context, userID, planID, excludeID string, respondedAt time.Time) error {
	query := `
		UPDATE join_requests jr
		SET status = $4, responded_at = $5
		FROM groups g
		WHERE jr.group_id = g.id
		  AND jr.user_id = $1
		  AND g.plan_id = $2
		  AND jr.id <> $3
		  AND jr.status = $6
	`

	_, err := r.executor.ExecContext(
		ctx,
		query,
		userID,
		planID,
		excludeID,
		domain.JoinRequestStatusCancelled,
		respondedAt,
		domain.JoinRequestStatusPending,
	)

	return err
}

func scanJoinRequests(rows *sql.Rows) ([]*domain.JoinRequest, error) {
	var requests []*domain.JoinRequest
	for rows.Next() {
		request := &domain.JoinRequest{}
		var respondedAt sql.NullTime
		var responderID sql.NullString
		err := rows.Scan(
			&request.ID,
			&request.GroupID,
			&request.UserID,
			&request.Message,
			&request.Status,
			&request.CreatedAt,
			&respondedAt,
			&responderID,
		)
		if err != nil {
			return nil, err
		}
		if respondedAt.Valid {
			request.RespondedAt = &respondedAt.Time
		}
		if responderID.Valid {
			request.ResponderID = &responderID.String
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}
