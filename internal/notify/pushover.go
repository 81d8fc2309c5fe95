package notify

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gregdel/pushover"
	"github.com/sirupsen/logrus"

	"github.com/danpilch/trainlist/internal/train"
)

var ErrMissingCredentials = errors.New("PUSHOVER_TOKEN and PUSHOVER_USER environment variables are required")

type Notifier struct {
	app       *pushover.Pushover
	recipient *pushover.Recipient
	logger    *logrus.Logger
}

func NewNotifier(token, userKey string, logger *logrus.Logger) *Notifier {
	return &Notifier{
		app:       pushover.New(token),
		recipient: pushover.NewRecipient(userKey),
		logger:    logger,
	}
}

// FromEnv builds a Notifier from PUSHOVER_TOKEN and PUSHOVER_USER.
func FromEnv(logger *logrus.Logger) (*Notifier, error) {
	token := strings.TrimSpace(os.Getenv("PUSHOVER_TOKEN"))
	user := strings.TrimSpace(os.Getenv("PUSHOVER_USER"))
	if token == "" || user == "" {
		return nil, ErrMissingCredentials
	}
	return NewNotifier(token, user, logger), nil
}

func (n *Notifier) Send(title, message string) error {
	msg := pushover.NewMessageWithTitle(message, title)

	resp, err := n.app.SendMessage(msg, n.recipient)
	if err != nil {
		return fmt.Errorf("sending pushover notification: %w", err)
	}

	n.logger.WithFields(logrus.Fields{
		"title":      title,
		"status":     resp.Status,
		"request_id": resp.ID,
	}).Debug("notification sent")

	return nil
}

// TrainAdded announces a newly recorded train.
func (n *Notifier) TrainAdded(r train.Record) error {
	title, body := trainAddedMessage(r)
	return n.Send(title, body)
}

func trainAddedMessage(r train.Record) (title, body string) {
	title = "Train Added"
	body = fmt.Sprintf("Train %d to %s departs at %s",
		r.Num, strings.TrimSpace(r.Destination), r.StartTime)
	return title, body
}
