package service

import "context"

// AcceptanceService - единственная точка, превращающая Pending предложение
// в участие в группе. Все ответы "принять" с обеих сторон проходят здесь
// через одну транзакцию с блокировкой строки группы.
type AcceptanceService interface {
	RespondToInvitation(ctx context.Context, invitationID, actorID string, accept bool) error
	RespondToJoinRequest(ctx context.Context, groupID, requestID, actorID string, accept bool) error
}
