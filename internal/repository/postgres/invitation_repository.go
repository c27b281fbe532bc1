package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/avagyan/studgroups/internal/domain"
	"github.com/avagyan/studgroups/internal/repository"
)

type invitationRepository struct {
	executor DBExecutor
}

func NewInvitationRepository(db *sql.DB) *invitationRepository {
	return &invitationRepository{executor: db}
}

func (r *invitationRepository) WithTx(tx *sql.Tx) repository.InvitationRepository {
	return &invitationRepository{executor: tx}
}

func (r *invitationRepository) Create(ctx context.Context, invitation *domain.Invitation) error {
	query := `
		INSERT INTO invitations (id, group_id, invitee_id, inviter_id, message, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	return r.executor.QueryRowContext(
		ctx,
		query,
		invitation.ID,
		invitation.GroupID,
		invitation.InviteeID,
		invitation.InviterID,
		invitation.Message,
		invitation.Status,
		invitation.ExpiresAt,
		invitation.CreatedAt,
	).Scan(&invitation.CreatedAt)
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `
		SELECT id, group_id, invitee_id, inviter_id, message, status, expires_at, created_at, responded_at
		FROM invitations
		WHERE id = $1
	`

	invitation := &domain.Invitation{}
	var respondedAt sql.NullTime
	err := r.executor.QueryRowContext(ctx, query, id).Scan(
		&invitation.ID,
		&invitation.GroupID,
		&invitation.InviteeID,
		&invitation.InviterID,
		&invitation.Message,
		&invitation.Status,
		&invitation.ExpiresAt,
		&invitation.CreatedAt,
		&respondedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("invitation not found")
		}
		return nil, err
	}

	if respondedAt.Valid {
		invitation.RespondedAt = &respondedAt.Time
	}

	return invitation, nil
}

func (r *invitationRepository) CountPendingByGroup(ctx context.Context, groupID string, now time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM invitations
		WHERE group_id = $1 AND status = $2 AND expires_at > $3
	`

	var count int
	err := r.executor.QueryRowContext(ctx, query, groupID, domain.InvitationStatusPending, now).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *invitationRepository) HasPendingForInvitee(ctx context.Context, groupID, inviteeID string, now time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM invitations
			WHERE group_id = $1 AND invitee_id = $2 AND status = $3 AND expires_at > $4
		)
	`

	var exists bool
	err := r.executor.QueryRowContext(ctx, query, groupID, inviteeID, domain.InvitationStatusPending, now).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *invitationRepository) ListPendingByGroup(ctx context.Context, groupID string, now time.Time) ([]*domain.Invitation, error) {
	query := `
		SELECT id, group_id, invitee_id, inviter_id, message, status, expires_at, created_at, responded_at
		FROM invitations
		WHERE group_id = $1 AND status = $2 AND expires_at > $3
		ORDER BY created_at
	`

	rows, err := r.executor.QueryContext(ctx, query, groupID, domain.InvitationStatusPending, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInvitations(rows)
}

func (r *invitationRepository) ListByInvitee(ctx context.Context, inviteeID, planID string) ([]*domain.Invitation, error) {
	query := `
		SELECT i.id, i.group_id, i.invitee_id, i.inviter_id, i.message, i.status, i.expires_at, i.created_at, i.responded_at
		FROM invitations i
		JOIN groups g ON i.group_id = g.id
		WHERE i.invitee_id = $1 AND g.plan_id = $2
		ORDER BY i.created_at
	`

	rows, err := r.executor.QueryContext(ctx, query, inviteeID, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanInvitations(rows)
}

func (r *invitationRepository) UpdateStatus(ctx context.Context, id string, status domain.InvitationStatus, respondedAt time.Time) error {
	query := `
		UPDATE invitations
		SET status = $2, responded_at = $3
		WHERE id = $1 AND status = $4
	`

	result, err := r.executor.ExecContext(ctx, query, id, status, respondedAt, domain.InvitationStatusPending)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errors.New("invitation not pending")
	}

	return nil
}

func (r *invitationRepository) DeclineOtherPendingByInvitee(ctx context.Context, inviteeID, planID, excludeID string, respondedAt time.Time) error {
	// Строки чужих групп намеренно не блокируются: если одна из них успеет
	// быть принятой до этого UPDATE, конфликт поймает перепроверка на той стороне
	query := `
		UPDATE invitations i
		SET status = $4, responded_at = $5
		FROM groups g
		WHERE i.group_id = g.id
		  AND i.invitee_id = $1
		  AND g.plan_id = $2
		  AND i.id <> $3
		  AND i.status = $6
	`

	_, err := r.executor.ExecContext(
		ctx,
		query,
		inviteeID,
		planID,
		excludeID,
		domain.InvitationStatusDeclined,
		respondedAt,
		domain.InvitationStatusPending,
	)

	return err
}

func scanInvitations(rows *sql.Rows) ([]*domain.Invitation, error) {
	var invitations []*domain.Invitation
	for rows.Next() {
		invitation := &domain.Invitation{}
		var respondedAt sql.NullTime
		err := rows.Scan(
			&invitation.ID,
			&invitation.GroupID,
			&invitation.InviteeID,
			&invitation.InviterID,
			&invitation.Message,
			&invitation.Status,
			&invitation.ExpiresAt,
			&invitation.CreatedAt,
			&respondedAt,
		)
		if err != nil {
			return nil, err
		}
		if respondedAt.Valid {
			invitation.RespondedAt = &respondedAt.Time
		}
		invitations = append(invitations, invitation)
	}

	return invitations, rows.Err()
}
