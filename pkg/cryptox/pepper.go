package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Argon2id parameters. These follow the OWASP minimum recommendation for
// interactive logins.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	pepperOnce sync.Once
	pepper     string
	pepperFile = "pepper"
)

// SetPepperPath configures where the pepper file lives. Must be called
// before the first password hash or verification.
func SetPepperPath(file string) {
	pepperFile = file
}

// GetPepper returns the process-wide pepper, loading or generating it on
// first use. A missing pepper is unrecoverable so we exit rather than
// silently hash without one.
func GetPepper() string {
	pepperOnce.Do(func() {
		p, err := loadOrGeneratePepper()
		if err != nil {
			slog.Error("failed to load or generate pepper", slog.Any("err", err))
			os.Exit(1)
		}
		pepper = p
	})

	return pepper
}

func loadOrGeneratePepper() (string, error) {
	file := filepath.Clean(pepperFile)
	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return "", err
	}

	if _, err := os.Stat(file); os.IsNotExist(err) {
		raw := make([]byte, keyLength)
		if _, err := rand.Read(raw); err != nil {
			return "", err
		}
		p := base64.RawURLEncoding.EncodeToString(raw)

		if err := os.WriteFile(file, []byte(p), 0600); err != nil {
			return "", err
		}
		return p, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
