package email

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/facedesk/booking-api/internal/entity"
)

const defaultFailureMessage = "failed to send email"

// ErrSendFailed matches every error returned by Sender.Send.
var ErrSendFailed = errors.New("email send failed")

// SendError carries the provider's message text back to the caller.
type SendError struct {
	Message string
}

// Error implements the error interface.
func (e *SendError) Error() string {
	return e.Message
}

// Is lets callers match SendError with errors.Is(err, ErrSendFailed).
func (e *SendError) Is(target error) bool {
	return target == ErrSendFailed
}

// Message describes a single outbound email.
type Message struct {
	To      []string
	Subject string
	HTML    string
	From    string
}

// API is the subset of the Resend emails service used by Sender.
type API interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// DeliveryRecorder persists the outcome of each dispatch attempt.
type DeliveryRecorder interface {
	Record(ctx context.Context, delivery entity.EmailDelivery) error
}

// OutcomeObserver is notified with "sent" or "failed" after each attempt.
type OutcomeObserver interface {
	ObserveEmail(outcome string)
}

// Sender dispatches transactional email through Resend, one attempt per call.
type Sender struct {
	api      API
	from     string
	logger   *zap.Logger
	recorder DeliveryRecorder
	observer OutcomeObserver
	now      func() time.Time
}

// Option configures optional Sender dependencies.
type Option func(*Sender)

// WithRecorder stores every attempt in the delivery log.
func WithRecorder(recorder DeliveryRecorder) Option {
	return func(s *Sender) {
		s.recorder = recorder
	}
}

// WithObserver reports outcomes to a metrics collector.
func WithObserver(observer OutcomeObserver) Option {
	return func(s *Sender) {
		s.observer = observer
	}
}

// NewSender builds a Sender around the official Resend client.
func NewSender(apiKey, defaultFrom string, logger *zap.Logger, opts ...Option) *Sender {
	return NewSenderWithAPI(resend.NewClient(apiKey).Emails, defaultFrom, logger, opts...)
}

// NewSenderWithAPI allows injecting a custom Resend implementation (useful for tests).
func NewSenderWithAPI(api API, defaultFrom string, logger *zap.Logger, opts ...Option) *Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Sender{
		api:    api,
		from:   defaultFrom,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send delivers msg and returns the provider's message id. Provider failures
// are logged and returned as *SendError.
func (s *Sender) Send(ctx context.Context, msg Message) (string, error) {
	from := strings.TrimSpace(msg.From)
	if from == "" {
		from = s.from
	}

	resp, err := s.api.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err == nil && (resp == nil || resp.Id == "") {
		err = errors.New("email provider returned no message id")
	}
	if err != nil {
		s.logger.Error("error sending email",
			zap.Strings("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		s.record(ctx, msg, "", err)
		return "", &SendError{Message: failureMessage(err)}
	}

	s.logger.Info("email sent", zap.String("id", resp.Id), zap.Strings("to", msg.To))
	s.record(ctx, msg, resp.Id, nil)
	return resp.Id, nil
}

func (s *Sender) record(ctx context.Context, msg Message, providerID string, sendErr error) {
	outcome := entity.EmailDeliverySent
	if sendErr != nil {
		outcome = entity.EmailDeliveryFailed
	}
	if s.observer != nil {
		s.observer.ObserveEmail(string(outcome))
	}
	if s.recorder == nil {
		return
	}

	delivery := entity.EmailDelivery{
		ID:         uuid.New(),
		Recipients: msg.To,
		Subject:    msg.Subject,
		Status:     outcome,
		CreatedAt:  s.now().UTC(),
	}
	if providerID != "" {
		delivery.ProviderMessageID = &providerID
	}
	if sendErr != nil {
		text := sendErr.Error()
		delivery.Error = &text
	}

	if err := s.recorder.Record(ctx, delivery); err != nil {
		s.logger.Warn("failed to record email delivery", zap.String("delivery_id", delivery.ID.String()), zap.Error(err))
	}
}

func failureMessage(err error) string {
	if err == nil {
		return defaultFailureMessage
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return defaultFailureMessage
}
