package registry

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("company not found")
	ErrInvalidTaxID      = errors.New("invalid tax id")
	ErrMalformedResponse = errors.New("malformed registry response")
)

const excerptLen = 200

// ValidateTaxID: 10 цифр у организации, 12 у физлица.
func ValidateTaxID(taxID string) error {
	if len(taxID) != 10 && len(taxID) != 12 {
		return fmt.Errorf("%w: %q must contain 10 or 12 digits", ErrInvalidTaxID, taxID)
	}
	for _, r := range taxID {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %q must contain only digits", ErrInvalidTaxID, taxID)
		}
	}
	return nil
}

func malformed(source, reason string, payload []byte) error {
	return fmt.Errorf("%w: %s: %s: %q", ErrMalformedResponse, source, reason, excerpt(payload))
}

func excerpt(payload []byte) string {
	if len(payload) <= excerptLen {
		return string(payload)
	}
	return string(payload[:excerptLen]) + "..."
}
