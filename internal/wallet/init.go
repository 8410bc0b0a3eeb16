package wallet

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/sapphire-relay/internal/wallet/keystore"
	"github/chapool/sapphire-relay/internal/wallet/seed"
	"golang.org/x/term"
)

const minPasswordLength = 8

var (
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrAddressMismatch   = errors.New("derived address does not match stored verification address")
	ErrSeedUninitialized = errors.New("seed not initialized")
)

// PasswordReader reads a password after printing prompt.
type PasswordReader func(prompt string) (string, error)

// InitializeKeystore unlocks or creates the relay keystore before any account is derived.
//
// When no keystore exists, the seed manager's current mnemonic is kept (or a new one is
// generated), a password is read twice and the encrypted mnemonic is written together with
// the source verification address. When a keystore exists, it is decrypted with the password
// and the seed manager is initialized from it; the derived source address must match the
// stored one.
func InitializeKeystore(ctx context.Context, seedManager seed.Manager, keystoreService keystore.Service, readPassword PasswordReader) error {
	log := log.With().Str("component", "wallet_init").Logger()

	exists, err := keystoreService.Exists(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check keystore existence")
	}

	if !exists {
		return createKeystore(ctx, seedManager, keystoreService, readPassword)
	}

	log.Info().Msg("Keystore found. Please enter password to unlock...")

	password, err := readPassword("Enter keystore password: ")
	if err != nil {
		return errors.Wrap(err, "failed to read password")
	}

	//nolint:varnamelen // ks is a common abbreviation for keystore
	ks, err := keystoreService.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get keystore")
	}

	mnemonic, err := keystoreService.Decrypt(ctx, ks, password)
	if err != nil {
		return errors.Wrap(err, "failed to decrypt keystore (invalid password?)")
	}

	if err := seedManager.Initialize(mnemonic); err != nil {
		return errors.Wrap(err, "failed to initialize seed manager")
	}

	valid, err := VerifyAddress(seedManager, ks.Address)
	if err != nil {
		return errors.Wrap(err, "failed to verify password")
	}

	if !valid {
		seedManager.Clear()
		return ErrAddressMismatch
	}

	log.Info().Msg("Keystore unlocked")

	return nil
}

func createKeystore(ctx context.Context, seedManager seed.Manager, keystoreService keystore.Service, readPassword PasswordReader) error {
	log := log.With().Str("component", "wallet_init").Logger()

	if !seedManager.IsInitialized() {
		log.Info().Msg("Keystore not found. Generating new mnemonic...")

		if _, err := seedManager.Generate(); err != nil {
			return errors.Wrap(err, "failed to generate mnemonic")
		}
	}

	password, err := readPassword("Enter password for keystore (min 8 characters): ")
	if err != nil {
		return errors.Wrap(err, "failed to read password")
	}

	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	passwordConfirm, err := readPassword("Confirm password: ")
	if err != nil {
		return errors.Wrap(err, "failed to read password confirmation")
	}

	if password != passwordConfirm {
		return ErrPasswordMismatch
	}

	verificationAddress, err := VerificationAddress(seedManager)
	if err != nil {
		return err
	}

	if _, err := keystoreService.Create(ctx, seedManager.Mnemonic(), password, verificationAddress); err != nil {
		return errors.Wrap(err, "failed to create keystore")
	}

	log.Info().Str("address", verificationAddress).Msg("Keystore created successfully")

	return nil
}

// TerminalPassword reads a password from the controlling terminal without echo.
//
//nolint:forbidigo // Password input requires direct terminal I/O
func TerminalPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", errors.Wrap(err, "failed to read password from terminal")
	}

	fmt.Fprintln(os.Stderr)

	return string(passwordBytes), nil
}
