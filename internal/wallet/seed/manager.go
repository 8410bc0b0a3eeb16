package seed

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

// EntropyBits is the mnemonic strength used for generated seeds (24 words).
const EntropyBits = 256

var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// manager implements seed management with thread-safe access
type manager struct {
	mnemonic    string
	seed        []byte
	mu          sync.RWMutex
	initialized bool
}

// NewManager creates a new SeedManager
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewManager() Manager {
	return &manager{
		seed:        nil,
		initialized: false,
	}
}

// Generate creates a new random mnemonic with 256 bits of entropy
func (m *manager) Generate() (string, error) {
	entropy, err := bip39.NewEntropy(EntropyBits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic")
	}

	if err := m.Initialize(mnemonic); err != nil {
		return "", err
	}

	return mnemonic, nil
}

// Initialize converts the mnemonic to a seed (BIP-39, empty passphrase)
func (m *manager) Initialize(mnemonic string) error {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return errors.Wrap(ErrInvalidMnemonic, err.Error())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearLocked()
	m.mnemonic = mnemonic
	m.seed = seed
	m.initialized = true

	return nil
}

// GetSeed gets the seed (returns a copy to prevent external modification)
func (m *manager) GetSeed() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized || m.seed == nil {
		return nil
	}

	// Return a copy to prevent external modification
	seedCopy := make([]byte, len(m.seed))
	copy(seedCopy, m.seed)
	return seedCopy
}

func (m *manager) Mnemonic() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.mnemonic
}

// IsInitialized checks if seed is initialized
func (m *manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.initialized
}

// Clear clears the seed from memory
func (m *manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearLocked()
}

func (m *manager) clearLocked() {
	for i := range m.seed {
		m.seed[i] = 0
	}
	m.seed = nil
	m.mnemonic = ""
	m.initialized = false
}
