package keystore

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github/chapool/sapphire-relay/internal/util"
)

var ErrKeystoreExists = errors.New("keystore already exists")

// Service stores the relay mnemonic encrypted on disk
type Service interface {
	// Create encrypts mnemonic with password and writes it together with the verification address
	Create(ctx context.Context, mnemonic string, password string, address string) (*File, error)

	// Decrypt decrypts the mnemonic from a loaded keystore
	Decrypt(ctx context.Context, file *File, password string) (string, error)

	// Load reads the keystore file
	Load(ctx context.Context) (*File, error)

	// Exists checks if the keystore file exists
	Exists(ctx context.Context) (bool, error)
}

type service struct {
	path   string
	params ScryptParams
	create func(path string) (io.WriteCloser, error)
}

// NewService creates a keystore service backed by the file at path
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(path string, params ScryptParams) (Service, error) {
	if path == "" {
		return nil, errors.New("keystore path is empty")
	}

	return &service{
		path:   path,
		params: params,
		create: createExclusive,
	}, nil
}

// createExclusive uses O_EXCL so a concurrent writer never gets overwritten.
func createExclusive(path string) (io.WriteCloser, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (s *service) Create(ctx context.Context, mnemonic string, password string, address string) (*File, error) {
	log := util.LogFromContext(ctx)

	exists, err := s.Exists(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check keystore existence")
	}
	if exists {
		return nil, errors.Wrap(ErrKeystoreExists, s.path)
	}

	file, err := encryptMnemonic(mnemonic, password, s.params)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encrypt mnemonic")
		return nil, errors.Wrap(err, "failed to encrypt mnemonic")
	}
	file.Address = address

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal keystore JSON")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return nil, errors.Wrap(err, "failed to create keystore directory")
	}

	if err := s.write(data); err != nil {
		return nil, err
	}

	log.Info().Str("path", s.path).Msg("Keystore created")

	return file, nil
}

// write creates the keystore file. A partially written file is removed so the next start can
// create it again.
func (s *service) write(data []byte) error {
	f, err := s.create(s.path)
	if err != nil {
		return errors.Wrap(err, "failed to create keystore file")
	}

	_, writeErr := f.Write(data)
	closeErr := f.Close()

	switch {
	case writeErr != nil:
		err = errors.Wrap(writeErr, "failed to write keystore file")
	case closeErr != nil:
		err = errors.Wrap(closeErr, "failed to close keystore file")
	default:
		return nil
	}

	if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		return errors.Wrapf(err, "partial keystore left at %s: %v", s.path, rmErr)
	}

	return err
}

func (s *service) Decrypt(ctx context.Context, file *File, password string) (string, error) {
	log := util.LogFromContext(ctx)

	mnemonic, err := decryptMnemonic(file, password)
	if err != nil {
		log.Error().Err(err).Msg("Failed to decrypt mnemonic")
		return "", errors.Wrap(err, "failed to decrypt mnemonic")
	}

	return mnemonic, nil
}

func (s *service) Load(_ context.Context) (*File, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read keystore")
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal keystore JSON")
	}

	return &file, nil
}

func (s *service) Exists(_ context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, errors.Wrap(err, "failed to stat keystore")
}
