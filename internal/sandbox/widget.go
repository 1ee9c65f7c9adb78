package sandbox

import (
	"context"
	"strings"

	"github.com/shaharia-lab/nexusctl/internal/dashboard"
	"github.com/shaharia-lab/nexusctl/internal/nexus"
)

// Test card numbers accepted by the Widget.
const (
	CardVisa       = "4242424242424242"
	CardMastercard = "5555555555554444"
	CardDeclined   = "4000000000000002"
)

// Widget simulates the hosted card form: it validates card details locally
// and exchanges them for a payment method token against the Store.
type Widget struct {
	store *Store
}

var _ dashboard.Tokenizer = (*Widget)(nil)

// NewWidget returns a Widget backed by store.
func NewWidget(store *Store) *Widget {
	return &Widget{store: store}
}

// ConfirmCardSetup validates card and redeems setupSecret for a token.
func (w *Widget) ConfirmCardSetup(ctx context.Context, setupSecret string, card dashboard.CardDetails) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	number := strings.ReplaceAll(card.Number, " ", "")
	if !luhnValid(number) {
		return "", &nexus.TokenizationError{Message: "Your card number is incorrect."}
	}
	if card.ExpMonth < 1 || card.ExpMonth > 12 || card.ExpYear < 2000 {
		return "", &nexus.TokenizationError{Message: "Your card's expiration date is invalid."}
	}
	if len(card.CVC) < 3 || len(card.CVC) > 4 {
		return "", &nexus.TokenizationError{Message: "Your card's security code is incomplete."}
	}
	if number == CardDeclined {
		return "", &nexus.TokenizationError{Message: "Your card was declined."}
	}

	token, err := w.store.Tokenize(setupSecret, Card{Brand: brandOf(number), Last4: number[len(number)-4:]})
	if err != nil {
		return "", &nexus.TokenizationError{Message: err.Error()}
	}
	return token, nil
}

func brandOf(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return "visa"
	case strings.HasPrefix(number, "5"):
		return "mastercard"
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return "amex"
	default:
		return "unknown"
	}
}

func luhnValid(number string) bool {
	if len(number) < 12 || len(number) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
