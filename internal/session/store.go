package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// file-backed token store (0600) with AES-GCM obfuscation. Not a
// replacement for OS keychains but avoids a plain-text token on disk.

const fileName = "token.json"

// Store persists the session token across restarts.
type Store struct {
	path string
}

type tokenFile struct {
	Token string `json:"token"` // base64(ciphertext)
}

// NewStore resolves the token file under the user config dir.
func NewStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("user config dir: %w", err)
	}
	dir = filepath.Join(dir, "budgetdash")
	if err := os.MkdirAll(dir, 0o700); err != nil { // restrict directory
		return nil, err
	}
	return &Store{path: filepath.Join(dir, fileName)}, nil
}

// NewStoreAt uses an explicit file path; tests point this at a temp dir.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Save seals and writes the token.
func (s *Store) Save(token string) error {
	ct, err := encrypt([]byte(token))
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenFile{Token: base64.StdEncoding.EncodeToString(ct)}, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load returns the persisted token, or "" when none is stored. A file
// that fails to unseal is treated as absent.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(tf.Token)
	if err != nil {
		return "", nil
	}
	pt, err := decrypt(raw)
	if err != nil {
		return "", nil
	}
	return string(pt), nil
}

// Clear removes the stored token.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func masterKey() []byte {
	user := os.Getenv("USER")
	base := fmt.Sprintf("budgetdash-%s-%s", runtime.GOOS, user)
	hash := sha256.Sum256([]byte(base))
	return hash[:]
}

func encrypt(plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	body := ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}
