package sandbox

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Model is a model served by the sandbox.
type Model struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	ModelType        string  `json:"model_type"`
	PricePer1KTokens float64 `json:"price_per_1k_tokens"`
}

// Card holds the display details of a card payment method.
type Card struct {
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
}

// PaymentMethod is a card attached to a customer.
type PaymentMethod struct {
	ID   string `json:"id"`
	Card *Card  `json:"card"`
}

// APIKey is a key issued to a customer.
type APIKey struct {
	ID         int       `json:"id"`
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Key        string    `json:"key"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// UsageEntry records one generation.
type UsageEntry struct {
	Timestamp        time.Time `json:"timestamp"`
	ModelID          int       `json:"model_id"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	Cost             float64   `json:"cost"`
}

// UsageRecord records one billable API call.
type UsageRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	Service      string    `json:"service"`
	RequestCount int       `json:"request_count"`
	Cost         float64   `json:"cost"`
}

type fault struct {
	method string
	path   string
	status int
}

// Store is the in-memory state behind the sandbox. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	models         []Model
	keys           []*APIKey
	nextKeyID      int
	paymentMethods map[string][]*PaymentMethod
	defaults       map[string]string
	setupSecrets   map[string]string
	pendingCards   map[string]Card
	usage          map[string][]UsageEntry
	records        map[string][]UsageRecord
	faults         []fault
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		nextKeyID:      1,
		paymentMethods: make(map[string][]*PaymentMethod),
		defaults:       make(map[string]string),
		setupSecrets:   make(map[string]string),
		pendingCards:   make(map[string]Card),
		usage:          make(map[string][]UsageEntry),
		records:        make(map[string][]UsageRecord),
	}
}

// AddModel registers a model.
func (s *Store) AddModel(m Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = append(s.models, m)
}

// Models returns a copy of the registered models.
func (s *Store) Models() []Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Model{}, s.models...)
}

func (s *Store) model(id int) (Model, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// IssueKey creates an active key for customerID. When secret is empty a random one is generated.
func (s *Store) IssueKey(customerID, name, secret string) APIKey {
	s.mu.Lock()
	defer s.mu.Unlock()

	if secret == "" {
		secret = "nx-" + strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	key := &APIKey{
		ID:         s.nextKeyID,
		CustomerID: customerID,
		Name:       name,
		Key:        secret,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}
	s.nextKeyID++
	s.keys = append(s.keys, key)

	return *key
}

// Keys returns copies of the keys issued to customerID.
func (s *Store) Keys(customerID string) []APIKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := []APIKey{}
	for _, k := range s.keys {
		if k.CustomerID == customerID {
			keys = append(keys, *k)
		}
	}
	return keys
}

// Key looks up a key by its secret.
func (s *Store) Key(secret string) (APIKey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, k := range s.keys {
		if k.Key == secret {
			return *k, true
		}
	}
	return APIKey{}, false
}

// ToggleKey flips the active flag of key id.
func (s *Store) ToggleKey(id int) (APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range s.keys {
		if k.ID == id {
			k.IsActive = !k.IsActive
			return *k, nil
		}
	}
	return APIKey{}, fmt.Errorf("API key %d not found", id)
}

// AddPaymentMethod appends pm to the customer's collection. A nil pm is
// stored as a JSON null entry.
func (s *Store) AddPaymentMethod(customerID string, pm *PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentMethods[customerID] = append(s.paymentMethods[customerID], pm)
}

// PaymentMethods returns the customer's collection, null entries included.
func (s *Store) PaymentMethods(customerID string) []*PaymentMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*PaymentMethod{}, s.paymentMethods[customerID]...)
}

func (s *Store) hasPaymentMethod(customerID, id string) bool {
	for _, pm := range s.paymentMethods[customerID] {
		if pm != nil && pm.ID == id {
			return true
		}
	}
	return false
}

// SetDefault marks id as the customer's default payment method.
func (s *Store) SetDefault(customerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasPaymentMethod(customerID, id) {
		return fmt.Errorf("payment method %s not found", id)
	}
	s.defaults[customerID] = id
	return nil
}

// DefaultPaymentMethod returns the customer's default payment method id.
func (s *Store) DefaultPaymentMethod(customerID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults[customerID]
}

// NewSetupSecret issues a single-use setup secret for customerID.
func (s *Store) NewSetupSecret(customerID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	secret := fmt.Sprintf("seti_%s_secret", strings.ReplaceAll(uuid.NewString(), "-", ""))
	s.setupSecrets[secret] = customerID
	return secret
}

// RedeemSetupSecret consumes secret and reports the customer it was issued to.
func (s *Store) RedeemSetupSecret(secret string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customerID, ok := s.setupSecrets[secret]
	if ok {
		delete(s.setupSecrets, secret)
	}
	return customerID, ok
}

// Tokenize redeems a setup secret and returns a payment method token for card.
func (s *Store) Tokenize(secret string, card Card) (string, error) {
	if _, ok := s.RedeemSetupSecret(secret); !ok {
		return "", fmt.Errorf("setup secret is invalid or already used")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	token := "pm_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
	s.pendingCards[token] = card
	return token, nil
}

// Attach adds a tokenized card to the customer. Tokens that did not come from
// Tokenize are accepted as long as they look like payment method ids. The
// first attached card becomes the default.
func (s *Store) Attach(customerID, token string) (PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !strings.HasPrefix(token, "pm_") {
		return PaymentMethod{}, fmt.Errorf("invalid payment method token %q", token)
	}
	if s.hasPaymentMethod(customerID, token) {
		return PaymentMethod{}, fmt.Errorf("payment method %s already attached", token)
	}

	card, ok := s.pendingCards[token]
	if ok {
		delete(s.pendingCards, token)
	} else {
		card = Card{Brand: "visa", Last4: token[len(token)-min(4, len(token)):]}
	}

	pm := &PaymentMethod{ID: token, Card: &card}
	s.paymentMethods[customerID] = append(s.paymentMethods[customerID], pm)
	if s.defaults[customerID] == "" {
		s.defaults[customerID] = token
	}
	return *pm, nil
}

func (s *Store) recordGeneration(keySecret string, entry UsageEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage[keySecret] = append(s.usage[keySecret], entry)
	s.records[keySecret] = append(s.records[keySecret], UsageRecord{
		Timestamp:    entry.Timestamp,
		Service:      fmt.Sprintf("generate_%d", entry.ModelID),
		RequestCount: 1,
		Cost:         entry.Cost,
	})
}

func (s *Store) recordCall(keySecret, service string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[keySecret] = append(s.records[keySecret], UsageRecord{
		Timestamp:    time.Now().UTC(),
		Service:      service,
		RequestCount: 1,
	})
}

func (s *Store) usageFor(keySecret string) ([]UsageEntry, []UsageRecord) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]UsageEntry{}, s.usage[keySecret]...), append([]UsageRecord{}, s.records[keySecret]...)
}

// InjectFault makes every request matching method and path answer with status
// until ClearFaults is called.
func (s *Store) InjectFault(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, fault{method: method, path: path, status: status})
}

// ClearFaults removes all injected faults.
func (s *Store) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = nil
}

func (s *Store) faultFor(method, path string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.faults {
		if f.method == method && f.path == path {
			return f.status, true
		}
	}
	return 0, false
}
