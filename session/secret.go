package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/zoomgrab-cli/zoomgrab/constant"
)

const keyringUser = "cookie-key"

// encryptionKey returns the 32-byte key protecting cookie snapshots at rest.
// The key lives in the system keyring; the snapshot itself is too large for
// some keyring backends, so only the key is stored there. A missing key is
// generated once and persisted.
func encryptionKey() ([]byte, error) {
	encoded, err := keyring.Get(constant.Zoomgrab, keyringUser)
	if err == nil {
		key, decodeErr := base64.StdEncoding.DecodeString(encoded)
		if decodeErr == nil && len(key) == 32 {
			return key, nil
		}
		// Fall through and regenerate a corrupted key.
	} else if !errors.Is(err, keyring.ErrNotFound) {
		return nil, fmt.Errorf("keyring: %w", err)
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}

	if err := keyring.Set(constant.Zoomgrab, keyringUser, base64.StdEncoding.EncodeToString(key)); err != nil {
		return nil, fmt.Errorf("keyring: %w", err)
	}

	return key, nil
}

// deleteEncryptionKey removes the cookie key from the keyring, invalidating
// any snapshot still on disk.
func deleteEncryptionKey() error {
	err := keyring.Delete(constant.Zoomgrab, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

func seal(key, plaintext []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func open(key []byte, encoded string) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("sealed payload too short")
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
