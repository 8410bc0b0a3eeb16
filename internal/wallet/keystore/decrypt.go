package keystore

import (
	"crypto/subtle"
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

var (
	ErrWrongPassword       = errors.New("invalid password: MAC mismatch")
	ErrUnsupportedKeystore = errors.New("unsupported keystore format")
)

//nolint:varnamelen // iv is a common abbreviation for initialization vector
func decryptMnemonic(file *File, password string) (string, error) {
	if file.Version != fileVersion || file.Crypto.Cipher != cipherName || file.Crypto.KDF != kdfName {
		return "", errors.Wrapf(ErrUnsupportedKeystore, "version %d cipher %q kdf %q",
			file.Version, file.Crypto.Cipher, file.Crypto.KDF)
	}

	params := file.Crypto.KDFParams
	if params.DKLen < 2*aesKey {
		return "", errors.Wrapf(ErrUnsupportedKeystore, "dklen %d", params.DKLen)
	}

	salt, err := hex.DecodeString(params.Salt)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode salt")
	}

	iv, err := hex.DecodeString(file.Crypto.CipherParams.IV)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode IV")
	}

	ciphertext, err := hex.DecodeString(file.Crypto.Ciphertext)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode ciphertext")
	}

	expectedMAC, err := hex.DecodeString(file.Crypto.MAC)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode MAC")
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive key")
	}

	mac := calculateMAC(derivedKey[aesKey:2*aesKey], ciphertext)
	if subtle.ConstantTimeCompare(mac, expectedMAC) != 1 {
		return "", ErrWrongPassword
	}

	plaintext, err := xorAES128CTR(derivedKey[:aesKey], iv, ciphertext)
	if err != nil {
		return "", errors.Wrap(err, "failed to decrypt mnemonic")
	}

	return string(plaintext), nil
}
