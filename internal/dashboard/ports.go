package dashboard

import "context"

// Requester sends one authenticated JSON request. *nexus.Client implements it.
type Requester interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// PaymentMethodsView is the region that lists payment methods. Each call
// replaces whatever the region showed before.
type PaymentMethodsView interface {
	ShowPaymentMethods(methods []PaymentMethod)
	ShowEmpty(message string)
	ShowError(message string)
}

// APIKeysView is the region that lists API keys. Each call replaces whatever
// the region showed before.
type APIKeysView interface {
	ShowAPIKeys(keys []APIKey)
	ShowEmpty(message string)
	ShowError(message string)
}

// Notifier shows a transient, user-visible message.
type Notifier interface {
	Success(message string)
	Failure(message string)
}

// Prompter asks the user for a single line of text. A cancelled prompt
// returns an error.
type Prompter interface {
	Prompt(ctx context.Context, message string) (string, error)
}

// AttachDialog is the modal that hosts the card form.
type AttachDialog interface {
	SetSubmitEnabled(enabled bool)
	Close()
}

// Tokenizer exchanges card details for a payment method token using a setup
// secret issued by the server. Failures should be *nexus.TokenizationError.
type Tokenizer interface {
	ConfirmCardSetup(ctx context.Context, setupSecret string, card CardDetails) (string, error)
}
