package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailDeliveryStatus is the outcome of a single dispatch attempt.
type EmailDeliveryStatus string

const (
	EmailDeliverySent   EmailDeliveryStatus = "sent"
	EmailDeliveryFailed EmailDeliveryStatus = "failed"
)

// EmailDelivery records one call to the email provider.
type EmailDelivery struct {
	ID                uuid.UUID
	ProviderMessageID *string
	Recipients        []string
	Subject           string
	Status            EmailDeliveryStatus
	Error             *string
	CreatedAt         time.Time
}
