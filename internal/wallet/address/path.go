package address

import (
	"fmt"
	"strconv"
	"strings"
)

const hardenedOffset uint32 = 0x80000000

// Derivation paths used by the relay.
const (
	// EthereumPath is the first account of the standard Ethereum BIP-44 tree.
	EthereumPath = "m/44'/60'/0'/0/0"
	// oasisPathFormat is the ADR 0008 account path, fully hardened.
	oasisPathFormat = "m/44'/474'/%d'"
)

// OasisPath returns the ADR 0008 derivation path for the given account index.
func OasisPath(index uint32) string {
	return fmt.Sprintf(oasisPathFormat, index)
}

// parseBIP44Path parses a BIP44 path string into indices
// Example: "m/44'/60'/0'/0/0" -> [2147483692, 2147483708, 2147483648, 0, 0]
func parseBIP44Path(path string) ([]uint32, error) {
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, fmt.Errorf("invalid BIP44 path: %s", path)
	}

	indices := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}

		hardened := strings.HasSuffix(part, "'")
		part = strings.TrimSuffix(part, "'")

		index, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return nil, fmt.Errorf("invalid path segment: %s", part)
		}

		// Add hardened flag (0x80000000)
		if hardened {
			index += uint64(hardenedOffset)
		}

		indices = append(indices, uint32(index))
	}

	return indices, nil
}
