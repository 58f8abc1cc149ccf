package notifier

import (
	"context"
	"time"

	"ats-backend/config"
	"ats-backend/lib/smtp"
	dbmodels "ats-backend/models/db"

	log "github.com/sirupsen/logrus"
)

// Provider is the fire-and-forget notification channel. Failures are logged
// and swallowed, they never surface to the caller and never block a
// committed transition.
type Provider interface {
	Notify(actorName string, recipients []dbmodels.Employee, message, redirectHint string)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		sender:      smtp.Instance,
		sendTimeout: time.Second * time.Duration(config.Conf.Notify.SendTimeoutInSec),
	}
}

type impl struct {
	sender      smtp.Provider
	sendTimeout time.Duration
}

func (i impl) Notify(actorName string, recipients []dbmodels.Employee, message, redirectHint string) {
	if len(recipients) == 0 {
		return
	}
	go i.send(actorName, recipients, message, redirectHint)
}

func (i impl) send(actorName string, recipients []dbmodels.Employee, message, redirectHint string) {
	logger := log.WithField("actor", actorName).
		WithField("recipients", len(recipients))
	ctx, cancel := context.WithTimeout(context.Background(), i.sendTimeout)
	defer cancel()
	body := message
	if redirectHint != "" {
		body = message + "\n" + redirectHint
	}
	for _, recipient := range recipients {
		if recipient.Email == "" {
			continue
		}
		done := make(chan error, 1)
		go func(to string) {
			done <- i.sender.SendEMail(actorName, to, body, "Pipeline update")
		}(recipient.Email)
		select {
		case err := <-done:
			if err != nil {
				logger.WithError(err).Warn("failed to deliver a pipeline notification")
			}
		case <-ctx.Done():
			logger.Warn("pipeline notification delivery timed out")
			return
		}
	}
}
