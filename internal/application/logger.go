package application

import (
	"io"

	"github.com/bnema/foodcook-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

func loggerOrDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return discard
}

func notifierOrNop(notifier ports.Notifier) ports.Notifier {
	if notifier != nil {
		return notifier
	}
	return ports.NopNotifier{}
}
