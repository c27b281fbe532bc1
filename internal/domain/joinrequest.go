package domain

import "time"

type JoinRequestStatus string

const (
	JoinRequestStatusPending   JoinRequestStatus = "PENDING"
	JoinRequestStatusAccepted  JoinRequestStatus = "ACCEPTED"
	JoinRequestStatusDeclined  JoinRequestStatus = "DECLINED"
	JoinRequestStatusCancelled JoinRequestStatus = "CANCELLED"
)

// JoinRequest - заявка студента на вступление в группу
type JoinRequest struct {
	ID          string
	GroupID     string
	UserID      string
	Message     string
	Status      JoinRequestStatus
	CreatedAt   time.Time
	RespondedAt *time.Time
	ResponderID *string
}
