package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// KeyParams identifies a cacheable roadmap request.
type KeyParams struct {
	Operation string          `json:"operation"`
	Provider  string          `json:"provider"`
	Model     string          `json:"model"`
	Payload   json.RawMessage `json:"payload"`
}

// GenerateKey returns the hex SHA256 of the normalized parameters.
// Operation, provider and model are compared case-insensitively.
func GenerateKey(params KeyParams) (string, error) {
	normalized := KeyParams{
		Operation: normalize(params.Operation),
		Provider:  normalize(params.Provider),
		Model:     normalize(params.Model),
		Payload:   params.Payload,
	}
	if len(normalized.Payload) == 0 {
		normalized.Payload = json.RawMessage("null")
	}

	data, err := json.Marshal(normalized)
	if err != nil {
		return "", fmt.Errorf("encoding cache key params: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
