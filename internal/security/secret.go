package security

import (
	"crypto/rand"
	"errors"
)

// SecretKeyLength is the size of generated signing keys.
const SecretKeyLength = 48

const secretAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var (
	errNegativeLength  = errors.New("length must be non-negative")
	errInvalidAlphabet = errors.New("alphabet must have between 1 and 256 characters")
)

// NewSecretKey returns a random key for signing session tokens.
func NewSecretKey() (string, error) {
	return RandomString(SecretKeyLength, secretAlphabet)
}

// RandomString draws length characters uniformly from alphabet using crypto/rand.
// Bytes that would bias the selection are rejected and redrawn.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", errInvalidAlphabet
	}

	limit := 256 - 256%len(alphabet)
	result := make([]byte, 0, length)
	buffer := make([]byte, length)
	for len(result) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, value := range buffer {
			if int(value) >= limit {
				continue
			}
			result = append(result, alphabet[int(value)%len(alphabet)])
			if len(result) == length {
				break
			}
		}
	}
	return string(result), nil
}
