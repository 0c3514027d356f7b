package usecase

import (
	"context"

	"github.com/webinarlab/lead-intake/internal/infra/integration/aweber"
)

type SubmitLeadInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Source   string `json:"source,omitempty"`
}

type SubmitLeadOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`

	// MailingList reports how the best-effort sync went. It is never
	// serialized: the caller cannot distinguish a swallowed provider
	// failure from success.
	MailingList SyncOutcome `json:"-"`
}

// SheetAppender appends one fixed-order row to the lead spreadsheet.
type SheetAppender interface {
	AppendLeadRow(ctx context.Context, row []string) error
}

// MailingListProvider exposes the provider calls the upsert workflow is
// built from. The workflow itself (lookup, patch-or-create, tag check)
// lives in the use case so it can be exercised against mocks.
type MailingListProvider interface {
	AccessToken(ctx context.Context) (string, error)
	FindSubscriber(ctx context.Context, token, email string) (*aweber.Subscriber, error)
	UpdateSubscriber(ctx context.Context, token string, sub *aweber.Subscriber, name, phone string) error
	AddTag(ctx context.Context, token string, sub *aweber.Subscriber, tag string) error
	CreateSubscriber(ctx context.Context, token string, input aweber.CreateSubscriberInput) error
}
