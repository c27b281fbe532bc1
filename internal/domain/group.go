package domain

import "time"

// GroupCapacity - фиксированный максимальный размер группы
const GroupCapacity = 4

// MaxPendingOffers - максимум одновременных Pending приглашений/заявок на группу
const MaxPendingOffers = 8

type GroupStatus string

const (
	GroupStatusOpen     GroupStatus = "OPEN"
	GroupStatusFull     GroupStatus = "FULL"
	GroupStatusHasTopic GroupStatus = "HAS_TOPIC"
)

type Group struct {
	ID          string
	PlanID      string
	Name        string
	Description string
	LeaderID    string
	MemberCount int
	Capacity    int
	Status      GroupStatus
	CreatedAt   time.Time
}

// IsOpen - группа принимает новых участников
func (g *Group) IsOpen() bool {
	return g.Status == GroupStatusOpen
}

// IsFrozen - группе назначена тема, состав заморожен
func (g *Group) IsFrozen() bool {
	return g.Status == GroupStatusHasTopic
}
