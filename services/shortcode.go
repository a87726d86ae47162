package services

import (
	"crypto/sha256"
	"encoding/base64"
	"strconv"
)

const codeLength = 7

// GenerateCode derives a short code from the URL content, so the same URL
// always maps to the same code. attempt > 0 salts the hash and is only used
// when a generated code collides with a different URL.
func GenerateCode(originalURL string, attempt int) string {
	input := originalURL
	if attempt > 0 {
		input = originalURL + "#" + strconv.Itoa(attempt)
	}
	sum := sha256.Sum256([]byte(input))
	return base64.RawURLEncoding.EncodeToString(sum[:])[:codeLength]
}
