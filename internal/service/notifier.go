package service

import (
	"context"

	"github.com/avagyan/studgroups/internal/domain"
)

// Notifier - внешняя подсистема уведомлений. Вызывается после коммита,
// ошибки доставки не влияют на результат операции.
type Notifier interface {
	Notify(ctx context.Context, event domain.Event)
}
