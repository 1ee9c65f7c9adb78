package dashboard

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shaharia-lab/nexusctl/internal/nexus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCard = CardDetails{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}

func staticToken(token string) Tokenizer {
	return tokenizerFunc(func(ctx context.Context, secret string, card CardDetails) (string, error) {
		return token, nil
	})
}

func TestAttachFlow_Submit(t *testing.T) {
	attachOK := map[string]route{
		"POST /attach-payment-method/1": {http.StatusOK, `{"success":true}`},
		"GET /payment-methods/1":        {http.StatusOK, twoCards},
	}

	tests := []struct {
		name       string
		routes     map[string]route
		tokenizer  Tokenizer
		wantCalls  []string
		wantEvents []string
		wantNote   notification
		check      func(t *testing.T, err error)
	}{
		{
			name:       "success closes dialog and reloads",
			routes:     attachOK,
			tokenizer:  staticToken("pm_new"),
			wantCalls:  []string{"POST /attach-payment-method/1", "GET /payment-methods/1"},
			wantEvents: []string{"disable", "close", "enable"},
			wantNote:   notification{ok: true, message: MsgPaymentMethodAdded},
			check: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:   "widget rejection keeps dialog open",
			routes: attachOK,
			tokenizer: tokenizerFunc(func(ctx context.Context, secret string, card CardDetails) (string, error) {
				return "", &nexus.TokenizationError{Message: "Your card number is incorrect."}
			}),
			wantEvents: []string{"disable", "enable"},
			wantNote:   notification{ok: false, message: "Your card number is incorrect."},
			check: func(t *testing.T, err error) {
				var tokErr *nexus.TokenizationError
				require.ErrorAs(t, err, &tokErr)
				assert.True(t, IsReported(err))
			},
		},
		{
			name:   "other tokenizer errors become tokenization errors",
			routes: attachOK,
			tokenizer: tokenizerFunc(func(ctx context.Context, secret string, card CardDetails) (string, error) {
				return "", errors.New("widget unavailable")
			}),
			wantEvents: []string{"disable", "enable"},
			wantNote:   notification{ok: false, message: "widget unavailable"},
			check: func(t *testing.T, err error) {
				var tokErr *nexus.TokenizationError
				require.ErrorAs(t, err, &tokErr)
			},
		},
		{
			name:       "empty token is a tokenization error",
			routes:     attachOK,
			tokenizer:  staticToken(""),
			wantEvents: []string{"disable", "enable"},
			wantNote:   notification{ok: false, message: MsgTokenizationFallback},
			check: func(t *testing.T, err error) {
				var tokErr *nexus.TokenizationError
				require.ErrorAs(t, err, &tokErr)
			},
		},
		{
			name:       "server rejection keeps dialog open",
			routes:     map[string]route{"POST /attach-payment-method/1": {http.StatusBadRequest, `{"detail":"bad token"}`}},
			tokenizer:  staticToken("pm_bad"),
			wantCalls:  []string{"POST /attach-payment-method/1"},
			wantEvents: []string{"disable", "enable"},
			wantNote:   notification{ok: false, message: MsgAttachFailed},
			check: func(t *testing.T, err error) {
				assert.Equal(t, http.StatusBadRequest, nexus.StatusCode(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.routes)
			dialog := &recordingDialog{enabled: true}
			flow := NewAttachFlow(f.handlers, dialog, tt.tokenizer)

			err := flow.Submit(context.Background(), "seti_secret", testCard)
			tt.check(t, err)

			if tt.wantCalls == nil {
				assert.Empty(t, f.server.calls())
			} else {
				assert.Equal(t, tt.wantCalls, f.server.calls())
			}
			assert.Equal(t, tt.wantEvents, dialog.events)
			assert.Equal(t, []notification{tt.wantNote}, f.notifier.notes)
			assert.True(t, dialog.enabled)
			assert.Equal(t, StateIdle, flow.State())
		})
	}
}

func TestAttachFlow_SendsTokenNotCard(t *testing.T) {
	f := newFixture(t, map[string]route{
		"POST /attach-payment-method/1": {http.StatusOK, `{"success":true}`},
		"GET /payment-methods/1":        {http.StatusOK, `[]`},
	})

	var gotSecret string
	var gotCard CardDetails
	tok := tokenizerFunc(func(ctx context.Context, secret string, card CardDetails) (string, error) {
		gotSecret, gotCard = secret, card
		return "pm_tok", nil
	})

	flow := NewAttachFlow(f.handlers, &recordingDialog{}, tok)
	require.NoError(t, flow.Submit(context.Background(), "seti_abc_secret", testCard))

	assert.Equal(t, "seti_abc_secret", gotSecret)
	assert.Equal(t, testCard, gotCard)
	req := f.server.request(0)
	assert.Equal(t, map[string]interface{}{"payment_method_id": "pm_tok"}, req.Body)
	assert.Equal(t, "application/json", req.ContentType)
}

func TestAttachFlow_RejectsConcurrentSubmit(t *testing.T) {
	f := newFixture(t, map[string]route{
		"POST /attach-payment-method/1": {http.StatusOK, `{"success":true}`},
		"GET /payment-methods/1":        {http.StatusOK, twoCards},
	})

	entered := make(chan struct{})
	release := make(chan struct{})
	tok := tokenizerFunc(func(ctx context.Context, secret string, card CardDetails) (string, error) {
		close(entered)
		<-release
		return "pm_slow", nil
	})

	dialog := &recordingDialog{enabled: true}
	flow := NewAttachFlow(f.handlers, dialog, tok)

	done := make(chan error, 1)
	go func() {
		done <- flow.Submit(context.Background(), "seti", testCard)
	}()
	<-entered

	assert.Equal(t, StateSubmitting, flow.State())
	dialog.mu.Lock()
	assert.False(t, dialog.enabled)
	dialog.mu.Unlock()

	err := flow.Submit(context.Background(), "seti", testCard)
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, StateIdle, flow.State())
	assert.Equal(t, []string{"POST /attach-payment-method/1", "GET /payment-methods/1"}, f.server.calls())
	assert.Equal(t, []string{"disable", "close", "enable"}, dialog.events)
}

func TestStaticTokenizer(t *testing.T) {
	token, err := StaticTokenizer{Token: "pm_123"}.ConfirmCardSetup(context.Background(), "seti", CardDetails{})
	require.NoError(t, err)
	assert.Equal(t, "pm_123", token)

	_, err = StaticTokenizer{}.ConfirmCardSetup(context.Background(), "seti", CardDetails{})
	var tokErr *nexus.TokenizationError
	assert.ErrorAs(t, err, &tokErr)
}

func TestAttachState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "submitting", StateSubmitting.String())
}
