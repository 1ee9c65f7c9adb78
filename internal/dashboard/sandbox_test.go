package dashboard_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shaharia-lab/nexusctl/internal/dashboard"
	"github.com/shaharia-lab/nexusctl/internal/nexus"
	"github.com/shaharia-lab/nexusctl/internal/sandbox"
	"github.com/shaharia-lab/nexusctl/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answer string

func (a answer) Prompt(ctx context.Context, message string) (string, error) {
	return string(a), nil
}

type session struct {
	store    *sandbox.Store
	handlers *dashboard.Handlers
	out      *bytes.Buffer
	prompter *answer
}

func newSession(t *testing.T) *session {
	t.Helper()
	store := sandbox.NewStore()
	sandbox.Seed(store, "nx-e2e")
	srv := httptest.NewServer(sandbox.NewServer("0", store).Handler())
	t.Cleanup(srv.Close)

	out := &bytes.Buffer{}
	th := theme.NewPlainTheme()
	view := &dashboard.TableView{Out: out, Theme: th}
	name := answer("")

	h, err := dashboard.NewHandlers(dashboard.Options{
		Client:      nexus.NewClient("nx-e2e", nexus.WithBaseURL(srv.URL)),
		CustomerID:  "1",
		PaymentView: view,
		KeysView:    view,
		Notifier:    &dashboard.ThemeNotifier{Out: out, Theme: th},
		Prompter:    &name,
	})
	require.NoError(t, err)

	return &session{store: store, handlers: h, out: out, prompter: &name}
}

func (a *answer) set(s string) { *a = answer(s) }

func TestSandbox_PaymentMethodLifecycle(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	s.store.AddPaymentMethod("1", nil)
	require.NoError(t, s.handlers.LoadPaymentMethods(ctx))
	assert.Contains(t, s.out.String(), "VISA ending in 4242")
	assert.Contains(t, s.out.String(), "MASTERCARD ending in 4444")

	s.out.Reset()
	require.NoError(t, s.handlers.SetDefaultPaymentMethod(ctx, "pm_card_mastercard"))
	assert.Equal(t, "pm_card_mastercard", s.store.DefaultPaymentMethod("1"))
	assert.Contains(t, s.out.String(), dashboard.MsgDefaultUpdated)

	secret, err := s.handlers.CreateSetupSecret(ctx)
	require.NoError(t, err)

	dialog := dashboard.NewConsoleDialog(s.out, theme.NewPlainTheme())
	flow := dashboard.NewAttachFlow(s.handlers, dialog, sandbox.NewWidget(s.store))

	s.out.Reset()
	err = flow.Submit(ctx, secret, dashboard.CardDetails{Number: sandbox.CardDeclined, ExpMonth: 1, ExpYear: 2030, CVC: "123"})
	require.Error(t, err)
	assert.False(t, dialog.Closed())
	assert.True(t, dialog.SubmitEnabled())
	assert.Contains(t, s.out.String(), "Your card was declined.")

	// a declined card does not consume the secret
	s.out.Reset()
	err = flow.Submit(ctx, secret, dashboard.CardDetails{Number: "5555 5555 5555 4444", ExpMonth: 6, ExpYear: 2031, CVC: "321"})
	require.NoError(t, err)
	assert.True(t, dialog.Closed())
	assert.True(t, dialog.SubmitEnabled())
	assert.Contains(t, s.out.String(), dashboard.MsgPaymentMethodAdded)
	assert.Len(t, s.store.PaymentMethods("1"), 4)
}

func TestSandbox_LoadFailureShowsErrorState(t *testing.T) {
	s := newSession(t)
	s.store.InjectFault(http.MethodGet, "/payment-methods/1", http.StatusInternalServerError)

	err := s.handlers.LoadPaymentMethods(context.Background())
	require.Error(t, err)
	assert.True(t, dashboard.IsReported(err))
	assert.Contains(t, s.out.String(), dashboard.MsgLoadPaymentMethods)
}

func TestSandbox_APIKeyLifecycle(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	require.NoError(t, s.handlers.CreateAPIKey(ctx))
	assert.Len(t, s.store.Keys("1"), 1, "empty name creates nothing")

	s.prompter.set("ci")
	require.NoError(t, s.handlers.CreateAPIKey(ctx))
	keys := s.store.Keys("1")
	require.Len(t, keys, 2)
	assert.Equal(t, "ci", keys[1].Name)
	assert.Contains(t, s.out.String(), "ci")

	s.out.Reset()
	require.NoError(t, s.handlers.ToggleAPIKey(ctx, "2"))
	assert.False(t, s.store.Keys("1")[1].IsActive)
	assert.Contains(t, s.out.String(), "inactive")

	err := s.handlers.ToggleAPIKey(ctx, "99")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, nexus.StatusCode(err))
	assert.Contains(t, s.out.String(), dashboard.MsgToggleKeyFailed)
}
