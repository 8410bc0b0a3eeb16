package identity

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github/chapool/sapphire-relay/internal/wallet/address"
	"github/chapool/sapphire-relay/internal/wallet/signer"
)

var ErrWrongAccount = errors.New("wallet asked to sign for another account")

// LocalWallet signs with an Ethereum private key held by the process.
type LocalWallet struct {
	key *ecdsa.PrivateKey
}

// NewLocalWallet parses a hex private key, with or without the 0x prefix.
func NewLocalWallet(hexKey string) (*LocalWallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid wallet private key")
	}

	return &LocalWallet{key: key}, nil
}

func (w *LocalWallet) Address(_ context.Context) (common.Address, error) {
	return crypto.PubkeyToAddress(w.key.PublicKey), nil
}

func (w *LocalWallet) PersonalSign(ctx context.Context, account common.Address, message []byte) ([]byte, error) {
	own, _ := w.Address(ctx)
	if account != own {
		return nil, errors.Wrap(ErrWrongAccount, account.Hex())
	}

	return signer.SignPersonal(w.key, message)
}

// PromptWallet relays the signing request to the operator, who signs the printed message
// with an external wallet and pastes back the address and signature.
type PromptWallet struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

func (w *PromptWallet) Address(_ context.Context) (common.Address, error) {
	prompt := promptui.Prompt{
		Label:    "Sapphire address of the wallet that will sign",
		Validate: validateEVMAddress,
		Stdin:    w.Stdin,
		Stdout:   w.Stdout,
	}

	result, err := prompt.Run()
	if err != nil {
		return common.Address{}, errors.Wrap(err, "input cancelled")
	}

	return address.ParseEVMAddress(strings.TrimSpace(result))
}

func (w *PromptWallet) PersonalSign(_ context.Context, account common.Address, message []byte) ([]byte, error) {
	out := io.Writer(os.Stdout)
	if w.Stdout != nil {
		out = w.Stdout
	}

	fmt.Fprintf(out, "\nSign the following message with %s (personal_sign):\n\n%s\n\n", account.Hex(), message)

	prompt := promptui.Prompt{
		Label:    "Signature (0x...)",
		Validate: validateSignature,
		Stdin:    w.Stdin,
		Stdout:   w.Stdout,
	}

	result, err := prompt.Run()
	if err != nil {
		return nil, errors.Wrap(err, "input cancelled")
	}

	return hexutil.Decode(strings.TrimSpace(result))
}

// PromptDestination asks the operator for the Sapphire address that receives the funds.
func PromptDestination(stdin io.ReadCloser, stdout io.WriteCloser) (string, error) {
	prompt := promptui.Prompt{
		Label:    "Sapphire address you want to send ROSE to",
		Default:  "0x",
		Validate: validateEVMAddress,
		Stdin:    stdin,
		Stdout:   stdout,
	}

	result, err := prompt.Run()
	if err != nil {
		return "", errors.Wrap(err, "input cancelled")
	}

	return strings.TrimSpace(result), nil
}

func validateEVMAddress(input string) error {
	_, err := address.ParseEVMAddress(strings.TrimSpace(input))
	return err
}

func validateSignature(input string) error {
	sig, err := hexutil.Decode(strings.TrimSpace(input))
	if err != nil {
		return errors.Wrap(err, "signature must be 0x-prefixed hex")
	}
	if len(sig) != crypto.SignatureLength {
		return errors.Errorf("signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))
	}
	return nil
}
