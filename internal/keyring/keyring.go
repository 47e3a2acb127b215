// Package keyring converts the vendor's ASCII-armored signing key into the
// binary keyring form apt expects.
package keyring

import (
	"bytes"
	"fmt"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Validate checks that data parses as an armored key ring carrying at least
// one key.
func Validate(data []byte) error {
	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}
	if len(entities) == 0 {
		return fmt.Errorf("no keys found in key file")
	}
	return nil
}

// Dearmor converts an ASCII-armored public key into binary keyring bytes
func Dearmor(data []byte) ([]byte, error) {
	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}
	if len(entities) == 0 {
		return nil, fmt.Errorf("no keys found in key file")
	}

	var buf bytes.Buffer
	for _, entity := range entities {
		if err := entity.Serialize(&buf); err != nil {
			return nil, fmt.Errorf("failed to serialize key: %w", err)
		}
	}
	return buf.Bytes(), nil
}
