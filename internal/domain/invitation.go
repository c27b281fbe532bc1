package domain

import "time"

// InvitationTTL - срок действия приглашения
const InvitationTTL = 4 * 24 * time.Hour

type InvitationStatus string

const (
	InvitationStatusPending   InvitationStatus = "PENDING"
	InvitationStatusAccepted  InvitationStatus = "ACCEPTED"
	InvitationStatusDeclined  InvitationStatus = "DECLINED"
	InvitationStatusCancelled InvitationStatus = "CANCELLED"
	InvitationStatusExpired   InvitationStatus = "EXPIRED"
)

// Invitation - приглашение от лидера группы кандидату
type Invitation struct {
	ID          string
	GroupID     string
	InviteeID   string
	InviterID   string
	Message     string
	Status      InvitationStatus
	ExpiresAt   time.Time
	CreatedAt   time.Time
	RespondedAt *time.Time
}

// IsExpired - срок приглашения истёк относительно переданного момента.
// Просроченные строки не чистятся фоном, фильтрация ленивая.
func (i *Invitation) IsExpired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// IsActionable - приглашение ещё можно принять или отклонить
func (i *Invitation) IsActionable(now time.Time) bool {
	return i.Status == InvitationStatusPending && !i.IsExpired(now)
}

// BatchInviteResult - результат массовой выдачи приглашений:
// созданные приглашения и пропущенные id (уже участник / уже приглашён)
type BatchInviteResult struct {
	Created []*Invitation
	Skipped []string
}
