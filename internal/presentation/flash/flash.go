// Package flash implements the one-shot notification cookie set alongside
// redirects. The rendering layer reads and clears it on the next page load.
package flash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CookieName is the cookie the flash message travels in
const CookieName = "lp_flash"

const maxAge = 300 // seconds; a flash that isn't rendered promptly is stale

// Kind classifies the flash for styling
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is a single one-shot notification
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Encoder signs and encodes flash messages into cookies
type Encoder struct {
	secret []byte
}

// NewEncoder creates a flash encoder with the given signing secret
func NewEncoder(secret string) *Encoder {
	return &Encoder{secret: []byte(secret)}
}

// Set attaches a flash message cookie to the response
func (e *Encoder) Set(c *gin.Context, kind Kind, text string) error {
	payload, err := json.Marshal(Message{Kind: kind, Text: text})
	if err != nil {
		return fmt.Errorf("failed to encode flash message: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	value := encoded + "." + e.sign(encoded)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", false, true)
	return nil
}

// Take reads and clears the flash cookie. The page-rendering layer calls it
// on the request that follows a redirect to show the notification once.
// Returns nil when there is no valid flash; a tampered cookie is treated the
// same as an absent one.
func (e *Encoder) Take(c *gin.Context) *Message {
	value, err := c.Cookie(CookieName)
	if err != nil {
		return nil
	}

	// Clear regardless of validity; a flash is rendered at most once
	c.SetCookie(CookieName, "", -1, "/", "", false, true)

	msg, err := e.Decode(value)
	if err != nil {
		return nil
	}
	return msg
}

// Decode verifies and decodes a raw cookie value
func (e *Encoder) Decode(value string) (*Message, error) {
	encoded, sig, ok := strings.Cut(value, ".")
	if !ok {
		return nil, fmt.Errorf("malformed flash cookie")
	}

	if !hmac.Equal([]byte(sig), []byte(e.sign(encoded))) {
		return nil, fmt.Errorf("flash cookie signature mismatch")
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode flash cookie: %w", err)
	}

	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flash message: %w", err)
	}

	return &msg, nil
}

func (e *Encoder) sign(encoded string) string {
	mac := hmac.New(sha256.New, e.secret)
	mac.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
