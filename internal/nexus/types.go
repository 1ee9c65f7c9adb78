package nexus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an opaque identifier for models, customers and keys. The server emits
// integer ids, other deployments emit strings, so both JSON forms are accepted.
type ID string

// UnmarshalJSON accepts a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits the id as a number when it is a canonical integer,
// preserving the server's representation on round trips. Anything else,
// such as "007" or "+1", is sent as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string {
	return string(id)
}

// Model describes a model the server exposes.
type Model struct {
	ID               ID      `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	ModelType        string  `json:"model_type,omitempty"`
	PricePer1KTokens float64 `json:"price_per_1k_tokens,omitempty"`
}

func (m Model) validate() error {
	if m.ID == "" {
		return fmt.Errorf("model %q has no id", m.Name)
	}
	return nil
}

// GenerationRequest is the body of a generate call. The wire names are fixed
// for compatibility with the server.
type GenerationRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// Choice is one generated completion.
type Choice struct {
	Text string `json:"text"`
}

// Usage reports token accounting for a single generation.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerationResponse is the result of a generate call.
type GenerationResponse struct {
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Text joins all choice texts with newlines.
func (r *GenerationResponse) Text() string {
	var buf bytes.Buffer
	for i, c := range r.Choices {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(c.Text)
	}
	return buf.String()
}

// generationEnvelope keeps raw fields so presence can be checked before decoding.
type generationEnvelope struct {
	Choices json.RawMessage `json:"choices"`
	Usage   json.RawMessage `json:"usage"`
}

func decodeGenerationResponse(data []byte) (*GenerationResponse, error) {
	var env generationEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &ValidationError{Reason: "generation response is not a JSON object", Err: err}
	}
	if !isJSONKind(env.Choices, '[') {
		return nil, &ValidationError{Reason: "generation response has no choices array"}
	}
	if !isJSONKind(env.Usage, '{') {
		return nil, &ValidationError{Reason: "generation response has no usage object"}
	}

	var resp GenerationResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &ValidationError{Reason: "generation response has unexpected field types", Err: err}
	}
	return &resp, nil
}

// UsageStats is the opaque usage document returned by the server. It is
// passed through unmodified.
type UsageStats json.RawMessage

// MarshalJSON returns the raw document.
func (u UsageStats) MarshalJSON() ([]byte, error) {
	if len(u) == 0 {
		return []byte("null"), nil
	}
	return u, nil
}

// Decode unmarshals the usage document into v.
func (u UsageStats) Decode(v any) error {
	return json.Unmarshal(u, v)
}

// Indent returns the document pretty-printed with two-space indentation.
func (u UsageStats) Indent() (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, u, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func isJSONKind(raw json.RawMessage, open byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == open
}
