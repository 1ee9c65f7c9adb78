package sandbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type contextKey string

const apiKeyContextKey contextKey = "api_key"

func (s *Server) injectFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, ok := s.store.faultFor(r.Method, r.URL.Path); ok {
			writeError(w, status, "injected fault")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireKey rejects requests without a known X-API-Key. Inference routes
// additionally require the key to be active.
func (s *Server) requireKey(mustBeActive bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, ok := s.store.Key(r.Header.Get("X-API-Key"))
			if !ok || (mustBeActive && !key.IsActive) {
				writeError(w, http.StatusUnauthorized, "Invalid or inactive API key")
				return
			}
			ctx := context.WithValue(r.Context(), apiKeyContextKey, key)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func callerKey(r *http.Request) APIKey {
	key, _ := r.Context().Value(apiKeyContextKey).(APIKey)
	return key
}

// authorizeCustomer checks that the caller's key belongs to the customer in the path.
func authorizeCustomer(w http.ResponseWriter, r *http.Request) (string, bool) {
	customerID := chi.URLParam(r, "id")
	if callerKey(r).CustomerID != customerID {
		writeError(w, http.StatusForbidden, "Not authorized to access this customer")
		return "", false
	}
	return customerID, true
}

func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	s.store.recordCall(callerKey(r).Key, "list_models")
	writeJSON(w, http.StatusOK, s.store.Models())
}

type generateBody struct {
	Prompt      *string  `json:"prompt"`
	MaxTokens   *int     `json:"max_tokens"`
	Temperature *float64 `json:"temperature"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	modelID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Model not found or inactive")
		return
	}
	model, ok := s.store.model(modelID)
	if !ok {
		writeError(w, http.StatusNotFound, "Model not found or inactive")
		return
	}

	var body generateBody
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if body.Prompt == nil || body.MaxTokens == nil || body.Temperature == nil {
		writeError(w, http.StatusUnprocessableEntity, "prompt, max_tokens and temperature are required")
		return
	}
	if *body.MaxTokens <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "max_tokens must be greater than 0")
		return
	}
	if *body.Temperature < 0 || *body.Temperature > 1 {
		writeError(w, http.StatusUnprocessableEntity, "temperature must be between 0.0 and 1.0")
		return
	}

	promptWords := strings.Fields(*body.Prompt)
	completion := append([]string{"Echo:"}, promptWords...)
	if len(completion) > *body.MaxTokens {
		completion = completion[:*body.MaxTokens]
	}

	promptTokens := len(promptWords)
	completionTokens := len(completion)
	totalTokens := promptTokens + completionTokens
	cost := float64(totalTokens) / 1000 * model.PricePer1KTokens

	s.store.recordGeneration(callerKey(r).Key, UsageEntry{
		Timestamp:        time.Now().UTC(),
		ModelID:          model.ID,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      totalTokens,
		Cost:             cost,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"model": model.Name,
		"choices": []map[string]string{
			{"text": strings.Join(completion, " ")},
		},
		"usage": map[string]int{
			"prompt_tokens":     promptTokens,
			"completion_tokens": completionTokens,
			"total_tokens":      totalTokens,
		},
	})
}

func (s *Server) getUsage(w http.ResponseWriter, r *http.Request) {
	usage, records := s.store.usageFor(callerKey(r).Key)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"usage":   usage,
		"records": records,
	})
}

func (s *Server) listPaymentMethods(w http.ResponseWriter, r *http.Request) {
	customerID, ok := authorizeCustomer(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.store.PaymentMethods(customerID))
}

type paymentMethodBody struct {
	PaymentMethodID string `json:"payment_method_id"`
}

func decodePaymentMethodBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body paymentMethodBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PaymentMethodID == "" {
		writeError(w, http.StatusBadRequest, "payment_method_id is required")
		return "", false
	}
	return body.PaymentMethodID, true
}

func (s *Server) setDefaultPaymentMethod(w http.ResponseWriter, r *http.Request) {
	customerID, ok := authorizeCustomer(w, r)
	if !ok {
		return
	}
	id, ok := decodePaymentMethodBody(w, r)
	if !ok {
		return
	}
	if err := s.store.SetDefault(customerID, id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) attachPaymentMethod(w http.ResponseWriter, r *http.Request) {
	customerID, ok := authorizeCustomer(w, r)
	if !ok {
		return
	}
	token, ok := decodePaymentMethodBody(w, r)
	if !ok {
		return
	}

	pm, err := s.store.Attach(customerID, token)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "payment_method": pm})
}

func (s *Server) createSetupIntent(w http.ResponseWriter, r *http.Request) {
	customerID, ok := authorizeCustomer(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"client_secret": s.store.NewSetupSecret(customerID)})
}

func (s *Server) createAPIKey(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customerID := fmt.Sprint(body["customer_id"])
	name, _ := body["name"].(string)
	if name == "" {
		writeError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}
	if callerKey(r).CustomerID != customerID {
		writeError(w, http.StatusForbidden, "Not authorized to access this customer")
		return
	}

	writeJSON(w, http.StatusOK, s.store.IssueKey(customerID, name, ""))
}

func (s *Server) listAPIKeys(w http.ResponseWriter, r *http.Request) {
	customerID, ok := authorizeCustomer(w, r)
	if !ok {
		return
	}

	keys := s.store.Keys(customerID)
	for i := range keys {
		keys[i].Key = maskKey(keys[i].Key)
	}
	writeJSON(w, http.StatusOK, keys)
}

func (s *Server) toggleAPIKey(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "API key not found")
		return
	}

	owned := false
	for _, k := range s.store.Keys(callerKey(r).CustomerID) {
		if k.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		writeError(w, http.StatusNotFound, "API key not found")
		return
	}

	key, err := s.store.ToggleKey(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": key.ID, "is_active": key.IsActive})
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return key
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
