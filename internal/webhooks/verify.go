package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
)

// Shopify webhook delivery headers.
const (
	HeaderHMAC       = "X-Shopify-Hmac-Sha256"
	HeaderTopic      = "X-Shopify-Topic"
	HeaderShopDomain = "X-Shopify-Shop-Domain"
	HeaderWebhookID  = "X-Shopify-Webhook-Id"
	HeaderAPIVersion = "X-Shopify-API-Version"
)

// Verification holds the delivery metadata extracted after a successful
// signature check.
type Verification struct {
	Topic      string
	Shop       string
	WebhookID  string
	APIVersion string
}

// VerifyError carries the HTTP status and message the endpoint should
// respond with when verification fails.
type VerifyError struct {
	Status  int
	Message string
}

func (e *VerifyError) Error() string {
	return e.Message
}

// Verify validates a Shopify webhook delivery: the HMAC-SHA256 of the raw,
// unparsed body (base64-encoded, keyed with the shared secret) must match the
// signature header, compared in constant time. On success the topic and shop
// headers are required; webhook id and api version are optional provenance.
func Verify(secret string, body []byte, header http.Header) (*Verification, *VerifyError) {
	if secret == "" {
		return nil, &VerifyError{Status: http.StatusInternalServerError, Message: "webhook secret not configured"}
	}

	supplied := strings.TrimSpace(header.Get(HeaderHMAC))
	if supplied == "" {
		return nil, &VerifyError{Status: http.StatusUnauthorized, Message: "missing HMAC header"}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	// hmac.Equal is constant-time; differing lengths fail without leaking
	// a byte position.
	if !hmac.Equal([]byte(expected), []byte(supplied)) {
		return nil, &VerifyError{Status: http.StatusUnauthorized, Message: "Invalid HMAC"}
	}

	topic := strings.TrimSpace(header.Get(HeaderTopic))
	shop := strings.TrimSpace(header.Get(HeaderShopDomain))
	if topic == "" || shop == "" {
		return nil, &VerifyError{Status: http.StatusBadRequest, Message: "missing topic or shop domain header"}
	}

	return &Verification{
		Topic:      topic,
		Shop:       shop,
		WebhookID:  strings.TrimSpace(header.Get(HeaderWebhookID)),
		APIVersion: strings.TrimSpace(header.Get(HeaderAPIVersion)),
	}, nil
}

// Sign computes the signature header value for a body. Exposed for callers
// that need to produce deliveries (tests, local tooling).
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
