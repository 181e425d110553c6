package receipt

import (
	"net/url"
	"strings"

	"pantry-backend/domain"
)

const accessKeyLength = 44

// ParseQrPayload validates that a raw QR string looks like a fiscal document
// payload and extracts its access key. It accepts either the bare 44-digit
// key or the consulta URL carried by NFC-e QR codes, where the "p" query
// parameter starts with the key followed by pipe-separated fields. Anything
// else is rejected before any network or database write happens.
func ParseQrPayload(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", domain.ErrMalformedQrPayload
	}

	if isAccessKey(raw) {
		return raw, nil
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", domain.ErrMalformedQrPayload
	}

	param := parsed.Query().Get("p")
	if param == "" {
		return "", domain.ErrMalformedQrPayload
	}

	key := param
	if idx := strings.Index(param, "|"); idx >= 0 {
		key = param[:idx]
	}

	if !isAccessKey(key) {
		return "", domain.ErrMalformedQrPayload
	}
	return key, nil
}

func isAccessKey(s string) bool {
	if len(s) != accessKeyLength {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
