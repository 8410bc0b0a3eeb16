package identity

const redacted = "[REDACTED]"

type SecretKind string

const (
	SecretMnemonic   SecretKind = "mnemonic"
	SecretPrivateKey SecretKind = "private key"
)

// Secret holds the material that controls the derived accounts. It formats as a redacted
// placeholder everywhere; only Reveal returns the value.
type Secret struct {
	Kind  SecretKind
	value string
}

func NewSecret(kind SecretKind, value string) Secret {
	return Secret{Kind: kind, value: value}
}

func (s Secret) Reveal() string {
	return s.value
}

func (s Secret) IsZero() bool {
	return s.value == ""
}

func (s Secret) String() string {
	return redacted
}

func (s Secret) GoString() string {
	return "identity.Secret{Kind:" + string(s.Kind) + ", " + redacted + "}"
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}
