package email

import (
	"context"
	"errors"
)

// Sender define la interfaz para avisos de cuentas por correo.
type Sender interface {
	SendAccountCreated(ctx context.Context, toEmail string, username string) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendAccountCreated(_ context.Context, _ string, _ string) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
