package domain

type EventType string

const (
	EventJoinRequestReceived EventType = "JOIN_REQUEST_RECEIVED"
	EventGroupInvitation     EventType = "GROUP_INVITATION"
	EventInvitationAccepted  EventType = "INVITATION_ACCEPTED"
	EventInvitationDeclined  EventType = "INVITATION_DECLINED"
)

// Event - событие изменения состава, адресованное конкретному пользователю.
// Доставкой занимается внешняя подсистема уведомлений.
type Event struct {
	Type        EventType
	RecipientID string
	GroupID     string
	ActorID     string
}
