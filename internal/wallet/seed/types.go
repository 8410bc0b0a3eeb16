package seed

// Manager keeps the relay's signing seed in process memory only.
type Manager interface {
	// Generate creates a fresh 24-word mnemonic and initializes the manager with it
	Generate() (string, error)

	// Initialize initializes the seed manager from an existing mnemonic
	Initialize(mnemonic string) error

	// GetSeed gets the BIP-39 seed (from memory)
	GetSeed() []byte

	// Mnemonic returns the mnemonic the seed was derived from
	Mnemonic() string

	// IsInitialized checks if seed is initialized
	IsInitialized() bool

	// Clear clears the seed from memory
	Clear()
}
