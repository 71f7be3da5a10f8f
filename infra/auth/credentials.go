package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Credentials are the optional API query parameters user_id and api_key.
type Credentials struct {
	UserID string
	APIKey string
}

// Empty reports whether either half is missing; partial credentials are
// never sent.
func (c Credentials) Empty() bool {
	return strings.TrimSpace(c.UserID) == "" || strings.TrimSpace(c.APIKey) == ""
}

// CredentialProvider supplies API credentials. An empty result means anonymous access.
type CredentialProvider interface {
	Credentials() (Credentials, error)
}

// Static always returns the same credentials.
type Static Credentials

// Credentials implements CredentialProvider.
func (s Static) Credentials() (Credentials, error) { return Credentials(s), nil }

// FileCredentialProvider reads KEY=value lines (user_id, api_key) from a file.
type FileCredentialProvider struct {
	path     string
	fallback Credentials
}

// NewFileCredentialProvider creates a provider reading from path. When
// fallback is complete it wins and the file is never read.
func NewFileCredentialProvider(path string, fallback Credentials) *FileCredentialProvider {
	return &FileCredentialProvider{path: path, fallback: fallback}
}

// Credentials reads the file. A missing file means anonymous access.
func (f *FileCredentialProvider) Credentials() (Credentials, error) {
	if !f.fallback.Empty() {
		return f.fallback, nil
	}
	if strings.TrimSpace(f.path) == "" {
		return Credentials{}, nil
	}
	values, err := godotenv.Read(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Credentials{}, nil
		}
		return Credentials{}, fmt.Errorf("reading credentials from %s: %w", f.path, err)
	}
	c := Credentials{
		UserID: strings.TrimSpace(values["user_id"]),
		APIKey: strings.TrimSpace(values["api_key"]),
	}
	if c.Empty() {
		return Credentials{}, fmt.Errorf("credentials file %s needs both user_id and api_key", f.path)
	}
	return c, nil
}
