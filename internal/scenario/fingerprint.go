// SPDX-License-Identifier: MIT

package scenario

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Fingerprint returns the hex SHA3-256 digest of the scenario's canonical
// JSON form. Formatting, comments and key order in the YAML source do not
// affect it; any semantic change does.
func (s *Scenario) Fingerprint() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("scenario: fingerprint: %w", err)
	}
	sum := sha3.Sum256(data)

	return hex.EncodeToString(sum[:]), nil
}
