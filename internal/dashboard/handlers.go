// Package dashboard implements the customer dashboard actions: listing and
// managing payment methods and API keys for one customer.
//
// Handlers talk to the server through a Requester and report outcomes through
// small view and notifier interfaces, so the same logic drives the terminal
// UI and the tests.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shaharia-lab/nexusctl/internal/logger"
	"github.com/shaharia-lab/nexusctl/internal/nexus"
)

// Messages shown to the user.
const (
	MsgNoPaymentMethods     = "No payment methods found"
	MsgLoadPaymentMethods   = "Error loading payment methods"
	MsgDefaultUpdated       = "Default payment method updated successfully"
	MsgSetDefaultFailed     = "Error setting default payment method"
	MsgPaymentMethodAdded   = "Payment method added successfully"
	MsgAttachFailed         = "Failed to attach payment method"
	MsgSetupFailed          = "Error preparing payment form"
	MsgNoAPIKeys            = "No API keys found"
	MsgLoadAPIKeys          = "Error loading API keys"
	MsgCreateKeyFailed      = "Error creating API key"
	MsgToggleKeyFailed      = "Error toggling API key"
	MsgKeyNamePrompt        = "Enter a name for the new API key:"
	MsgTokenizationFallback = "Your card could not be verified"
)

// Options wires the dependencies of Handlers.
type Options struct {
	Client      Requester
	CustomerID  nexus.ID
	PaymentView PaymentMethodsView
	KeysView    APIKeysView
	Notifier    Notifier
	Prompter    Prompter
	Logger      logger.Logger
}

// Handlers runs dashboard actions for a single customer.
type Handlers struct {
	client      Requester
	customerID  nexus.ID
	paymentView PaymentMethodsView
	keysView    APIKeysView
	notifier    Notifier
	prompter    Prompter
	logger      logger.Logger
}

// NewHandlers validates opts and returns Handlers. Prompter is only required
// by CreateAPIKey and may be nil otherwise.
func NewHandlers(opts Options) (*Handlers, error) {
	if opts.Client == nil {
		return nil, errors.New("dashboard: client is required")
	}
	if opts.CustomerID == "" {
		return nil, errors.New("dashboard: customer id is required")
	}
	if opts.PaymentView == nil || opts.KeysView == nil {
		return nil, errors.New("dashboard: payment and key views are required")
	}
	if opts.Notifier == nil {
		return nil, errors.New("dashboard: notifier is required")
	}

	log := opts.Logger
	if log == nil {
		log = logger.Discard
	}

	return &Handlers{
		client:      opts.Client,
		customerID:  opts.CustomerID,
		paymentView: opts.PaymentView,
		keysView:    opts.KeysView,
		notifier:    opts.Notifier,
		prompter:    opts.Prompter,
		logger:      log.WithField("customer_id", opts.CustomerID.String()),
	}, nil
}

// CustomerID returns the customer the handlers act for.
func (h *Handlers) CustomerID() nexus.ID {
	return h.customerID
}

func (h *Handlers) customerPath(prefix string) string {
	return prefix + url.PathEscape(h.customerID.String())
}

// LoadPaymentMethods fetches the customer's payment methods and renders them.
// Null or incomplete entries are skipped. Valid JSON that is not a list, or a
// list with nothing usable, renders the empty state. A body that is not JSON
// renders the error state.
func (h *Handlers) LoadPaymentMethods(ctx context.Context) error {
	var body json.RawMessage
	if err := h.client.Do(ctx, http.MethodGet, h.customerPath("/payment-methods/"), nil, &body); err != nil {
		h.logFailure("load payment methods", err)
		h.paymentView.ShowError(MsgLoadPaymentMethods)
		return &ReportedError{Action: "load payment methods", Err: err}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		h.logger.Warn("Payment methods response is not a list", map[string]interface{}{"error": err.Error()})
	}

	methods := make([]PaymentMethod, 0, len(raw))
	for i, item := range raw {
		var pm *PaymentMethod
		if err := json.Unmarshal(item, &pm); err != nil || !pm.usable() {
			h.logger.Debug("Skipping payment method entry", map[string]interface{}{"index": i})
			continue
		}
		methods = append(methods, *pm)
	}

	if len(methods) == 0 {
		h.paymentView.ShowEmpty(MsgNoPaymentMethods)
		return nil
	}

	h.paymentView.ShowPaymentMethods(methods)
	return nil
}

// SetDefaultPaymentMethod makes paymentMethodID the default, then notifies and
// reloads the list.
func (h *Handlers) SetDefaultPaymentMethod(ctx context.Context, paymentMethodID string) error {
	body := paymentMethodRequest{PaymentMethodID: paymentMethodID}
	if err := h.client.Do(ctx, http.MethodPost, h.customerPath("/setup-automatic-payments/"), body, nil); err != nil {
		h.logFailure("set default payment method", err)
		h.notifier.Failure(MsgSetDefaultFailed)
		return &ReportedError{Action: "set default payment method", Err: err}
	}

	h.notifier.Success(MsgDefaultUpdated)
	return h.LoadPaymentMethods(ctx)
}

// CreateSetupSecret asks the server for the one-time secret the Tokenizer
// needs before the attach dialog can submit.
func (h *Handlers) CreateSetupSecret(ctx context.Context) (string, error) {
	var resp setupIntentResponse
	err := h.client.Do(ctx, http.MethodPost, h.customerPath("/api/setup-intent/"), nil, &resp)
	if err == nil && resp.ClientSecret == "" {
		err = &nexus.ValidationError{Reason: "setup intent response has no client_secret"}
	}
	if err != nil {
		h.logFailure("create setup secret", err)
		h.notifier.Failure(MsgSetupFailed)
		return "", &ReportedError{Action: "create setup secret", Err: err}
	}
	return resp.ClientSecret, nil
}

// attachPaymentMethod registers an already tokenized card with the customer.
func (h *Handlers) attachPaymentMethod(ctx context.Context, token string) error {
	body := paymentMethodRequest{PaymentMethodID: token}
	return h.client.Do(ctx, http.MethodPost, h.customerPath("/attach-payment-method/"), body, nil)
}

// LoadAPIKeys fetches the customer's keys and renders them.
func (h *Handlers) LoadAPIKeys(ctx context.Context) error {
	var keys []APIKey
	if err := h.client.Do(ctx, http.MethodGet, h.customerPath("/api-keys/"), nil, &keys); err != nil {
		h.logFailure("load API keys", err)
		h.keysView.ShowError(MsgLoadAPIKeys)
		return &ReportedError{Action: "load API keys", Err: err}
	}

	if len(keys) == 0 {
		h.keysView.ShowEmpty(MsgNoAPIKeys)
		return nil
	}

	h.keysView.ShowAPIKeys(keys)
	return nil
}

// CreateAPIKey prompts for a name and creates a key with it. An empty name or
// a cancelled prompt ends the action without a request.
func (h *Handlers) CreateAPIKey(ctx context.Context) error {
	if h.prompter == nil {
		return errors.New("dashboard: no prompter configured")
	}

	name, err := h.prompter.Prompt(ctx, MsgKeyNamePrompt)
	if err != nil {
		h.logger.Debug("API key name prompt cancelled", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if name == "" {
		return nil
	}

	return h.CreateAPIKeyNamed(ctx, name)
}

// CreateAPIKeyNamed creates a key called name and reloads the key list. An
// empty name does nothing.
func (h *Handlers) CreateAPIKeyNamed(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}

	body := createKeyRequest{CustomerID: h.customerID, Name: name}
	if err := h.client.Do(ctx, http.MethodPost, "/api-keys", body, nil); err != nil {
		h.logFailure("create API key", err)
		h.notifier.Failure(MsgCreateKeyFailed)
		return &ReportedError{Action: "create API key", Err: err}
	}

	return h.LoadAPIKeys(ctx)
}

// ToggleAPIKey flips the active flag of keyID and reloads the key list.
func (h *Handlers) ToggleAPIKey(ctx context.Context, keyID nexus.ID) error {
	path := fmt.Sprintf("/api-keys/%s/toggle", url.PathEscape(keyID.String()))
	if err := h.client.Do(ctx, http.MethodPost, path, nil, nil); err != nil {
		h.logFailure("toggle API key", err)
		h.notifier.Failure(MsgToggleKeyFailed)
		return &ReportedError{Action: "toggle API key", Err: err}
	}

	return h.LoadAPIKeys(ctx)
}

func (h *Handlers) logFailure(action string, err error) {
	fields := map[string]interface{}{"action": action, "error": err.Error()}
	if status := nexus.StatusCode(err); status != 0 {
		fields["status"] = status
	}
	h.logger.Warn("Dashboard request failed", fields)
}
