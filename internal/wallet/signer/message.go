package signer

import (
	"crypto/sha512"
	"encoding/hex"
)

const chainSeparator = " for chain "

// PrepareMessage returns the digest that is actually signed: SHA-512/256(context || message).
func PrepareMessage(context string, message []byte) []byte {
	h := sha512.New512_256()
	h.Write([]byte(context))
	h.Write(message)
	return h.Sum(nil)
}

// ChainContext appends the chain domain separator to a base signature context.
func ChainContext(base, chainContext string) string {
	return base + chainSeparator + chainContext
}

// RuntimeChainContext derives a runtime's chain context from its id and the consensus chain
// context.
func RuntimeChainContext(runtimeID []byte, consensusChainContext string) string {
	h := sha512.New512_256()
	h.Write(runtimeID)
	h.Write([]byte(consensusChainContext))
	return hex.EncodeToString(h.Sum(nil))
}
