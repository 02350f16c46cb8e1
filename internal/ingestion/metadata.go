package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Metadata describes where a job description came from.
type Metadata struct {
	Source   string `json:"source"`
	Hash     string `json:"hash"` // SHA256 of the cleaned text
	Words    int    `json:"words"`
	LoadedAt string `json:"loaded_at"` // RFC3339
	FromURL  bool   `json:"from_url,omitempty"`
}

// NewMetadata describes cleaned text loaded from source.
func NewMetadata(text, source string) *Metadata {
	return &Metadata{
		Source:   source,
		Hash:     computeHash(text),
		Words:    len(strings.Fields(text)),
		LoadedAt: time.Now().UTC().Format(time.RFC3339),
		FromURL:  strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
