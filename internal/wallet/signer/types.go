package signer

// Scheme names the signature scheme of a ContextSigner as it appears in runtime address specs.
type Scheme string

const (
	SchemeEd25519      Scheme = "ed25519"
	SchemeSecp256k1Eth Scheme = "secp256k1eth"
)

// ContextSigner produces domain separated signatures: the signed digest always binds the
// signature context (which includes the chain context) to the message.
type ContextSigner interface {
	// Scheme returns the signature scheme
	Scheme() Scheme

	// Public returns the serialized public key
	Public() []byte

	// ContextSign signs message under context
	ContextSign(context string, message []byte) ([]byte, error)
}
