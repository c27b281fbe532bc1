package notification

import (
	"context"

	"github.com/avagyan/studgroups/internal/domain"
	"github.com/sirupsen/logrus"
)

// LogNotifier пишет события в структурированный лог. Реальную доставку
// (почта, push) выполняет отдельная подсистема, подписанная на эти записи.
type LogNotifier struct {
	log *logrus.Logger
}

func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, event domain.Event) {
	n.log.WithFields(logrus.Fields{
		"type":      event.Type,
		"recipient": event.RecipientID,
		"group_id":  event.GroupID,
		"actor_id":  event.ActorID,
	}).Info("membership event")
}
