package domain

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Это позволяет использовать errors.Is()
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	// ErrAlreadyInPlan - пользователь уже состоит в группе этого плана
	ErrAlreadyInPlan = &DomainError{
		Code:    "ALREADY_IN_PLAN",
		Message: "user already belongs to a group in this plan",
	}

	// ErrAlreadyMember - кандидат уже состоит в группе этого плана
	ErrAlreadyMember = &DomainError{
		Code:    "ALREADY_MEMBER",
		Message: "candidate already holds a membership in this plan",
	}

	// ErrNotLeader - действие доступно только лидеру группы
	ErrNotLeader = &DomainError{
		Code:    "NOT_LEADER",
		Message: "actor is not the group leader",
	}

	// ErrNotRequester - отменить заявку может только её автор
	ErrNotRequester = &DomainError{
		Code:    "NOT_REQUESTER",
		Message: "actor is not the author of this join request",
	}

	// ErrForbidden - действие недоступно этому пользователю
	ErrForbidden = &DomainError{
		Code:    "FORBIDDEN",
		Message: "actor is not allowed to perform this action",
	}

	// ErrGroupNotOpen - группа заполнена или закрыта для изменений
	ErrGroupNotOpen = &DomainError{
		Code:    "GROUP_NOT_OPEN",
		Message: "group is not open for new members",
	}

	// ErrMembershipFrozen - группе назначена тема, состав заморожен
	ErrMembershipFrozen = &DomainError{
		Code:    "MEMBERSHIP_FROZEN",
		Message: "group has an assigned topic, membership is frozen",
	}

	// ErrTooManyPending - достигнут потолок одновременных Pending предложений
	ErrTooManyPending = &DomainError{
		Code:    "TOO_MANY_PENDING",
		Message: "too many pending offers for this group",
	}

	// ErrDuplicateOffer - такое приглашение/заявка уже ожидает ответа
	ErrDuplicateOffer = &DomainError{
		Code:    "DUPLICATE_OFFER",
		Message: "a pending offer between this group and user already exists",
	}

	// ErrOfferNotPending - предложение уже в терминальном статусе
	ErrOfferNotPending = &DomainError{
		Code:    "OFFER_NOT_PENDING",
		Message: "offer is no longer pending",
	}

	// ErrStateConflict - перепроверка под блокировкой не прошла:
	// группа заполнилась или кандидат уже пристроен
	ErrStateConflict = &DomainError{
		Code:    "STATE_CONFLICT",
		Message: "group state changed, offer can no longer be accepted",
	}

	// ErrMustTransferFirst - лидер не может выйти, не передав лидерство
	ErrMustTransferFirst = &DomainError{
		Code:    "MUST_TRANSFER_FIRST",
		Message: "leader must transfer leadership before leaving",
	}

	// ErrNotMember - пользователь не состоит в этой группе
	ErrNotMember = &DomainError{
		Code:    "NOT_MEMBER",
		Message: "user is not a member of this group",
	}

	// ErrNotFound - ресурс не найден
	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "resource not found",
	}
)

// NewNotFoundError создает ошибку NOT_FOUND с дополнительным контекстом
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewValidationError создает ошибку BAD_REQUEST для некорректного ввода
func NewValidationError(message string) *DomainError {
	return &DomainError{
		Code:    "BAD_REQUEST",
		Message: message,
	}
}
