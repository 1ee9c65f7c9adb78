package dashboard

import (
	"fmt"
	"strings"

	"github.com/shaharia-lab/nexusctl/internal/nexus"
)

// Card holds the display details of a card payment method.
type Card struct {
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
}

// PaymentMethod is a stored card.
type PaymentMethod struct {
	ID   string `json:"id"`
	Card *Card  `json:"card"`
}

// Label renders the method the way the dashboard lists it, e.g. "VISA ending in 4242".
func (pm PaymentMethod) Label() string {
	if pm.Card == nil {
		return pm.ID
	}
	return fmt.Sprintf("%s ending in %s", strings.ToUpper(pm.Card.Brand), pm.Card.Last4)
}

func (pm *PaymentMethod) usable() bool {
	return pm != nil && pm.ID != "" && pm.Card != nil
}

// APIKey is a key issued to the customer. Listings return the key masked.
type APIKey struct {
	ID        nexus.ID `json:"id"`
	Name      string   `json:"name"`
	Key       string   `json:"key"`
	IsActive  bool     `json:"is_active"`
	CreatedAt string   `json:"created_at,omitempty"`
}

// Status is "active" or "inactive".
func (k APIKey) Status() string {
	if k.IsActive {
		return "active"
	}
	return "inactive"
}

// CardDetails is what the user typed into the card form. It only ever
// reaches the Tokenizer, never the dashboard endpoints.
type CardDetails struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

type paymentMethodRequest struct {
	PaymentMethodID string `json:"payment_method_id"`
}

type createKeyRequest struct {
	CustomerID nexus.ID `json:"customer_id"`
	Name       string   `json:"name"`
}

type setupIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}
