package domain

import "time"

// Membership - участие пользователя в группе.
// Пользователь может состоять не более чем в одной группе в рамках плана.
type Membership struct {
	GroupID  string
	UserID   string
	PlanID   string
	JoinedAt time.Time
}
