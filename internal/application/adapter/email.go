// Package adapter defines interfaces that are implemented in the integration
// layer.
package adapter

import (
	"context"

	"github.com/piggybank/backend/internal/domain/entity"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for the outbound email provider.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailQueueRepository defines the persistence contract for the email queue.
type EmailQueueRepository interface {
	// Enqueue stores a new email job.
	Enqueue(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs retrieves up to limit jobs that are ready to process.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	// Update persists the state of an email job.
	Update(ctx context.Context, job *entity.EmailJob) error
}
