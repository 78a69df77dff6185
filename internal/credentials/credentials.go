// Package credentials parses the storage credential blob supplied at startup.
package credentials

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"photorelay/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ServiceAccount is a Google service-account key.
type ServiceAccount struct {
	Type         string `json:"type" validate:"eq=service_account"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key" validate:"required"`
	ClientEmail  string `json:"client_email" validate:"required,email"`
	TokenURI     string `json:"token_uri"`

	raw []byte
}

// JSON returns the blob the account was parsed from.
func (a *ServiceAccount) JSON() []byte {
	return a.raw
}

// AccessKey is a static S3 access key pair.
type AccessKey struct {
	AccessKeyID     string `json:"access_key_id" validate:"required"`
	SecretAccessKey string `json:"secret_access_key" validate:"required"`
	SessionToken    string `json:"session_token"`
}

// Load returns the blob from inline text, falling back to reading path.
// Inline text may be raw JSON or base64-encoded JSON.
func Load(inline, path string) ([]byte, error) {
	inline = strings.TrimSpace(inline)
	if inline == "" && path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading credential file: %w", err)
		}
		inline = strings.TrimSpace(string(data))
	}
	if inline == "" {
		return nil, domain.ErrMissingCredential
	}
	if strings.HasPrefix(inline, "{") {
		return []byte(inline), nil
	}

	decoded, err := base64.StdEncoding.DecodeString(inline)
	if err != nil {
		return nil, fmt.Errorf("%w: neither JSON nor base64", domain.ErrInvalidCredential)
	}
	decoded = bytes.TrimSpace(decoded)
	if !bytes.HasPrefix(decoded, []byte("{")) {
		return nil, fmt.Errorf("%w: decoded blob is not JSON", domain.ErrInvalidCredential)
	}
	return decoded, nil
}

// ParseServiceAccount validates a service-account key. The private key must
// be a PEM block; it is not otherwise inspected until the first token fetch.
func ParseServiceAccount(blob []byte) (*ServiceAccount, error) {
	var sa ServiceAccount
	if err := decodeBlob(blob, &sa); err != nil {
		return nil, err
	}
	if err := validate.Struct(&sa); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredential, err)
	}
	if block, _ := pem.Decode([]byte(sa.PrivateKey)); block == nil {
		return nil, fmt.Errorf("%w: private_key is not PEM encoded", domain.ErrInvalidCredential)
	}
	sa.raw = blob
	return &sa, nil
}

// ParseAccessKey validates an S3 access key blob.
func ParseAccessKey(blob []byte) (*AccessKey, error) {
	var key AccessKey
	if err := decodeBlob(blob, &key); err != nil {
		return nil, err
	}
	if err := validate.Struct(&key); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredential, err)
	}
	return &key, nil
}

func decodeBlob(blob []byte, v interface{}) error {
	if len(bytes.TrimSpace(blob)) == 0 {
		return domain.ErrMissingCredential
	}
	if err := json.Unmarshal(blob, v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidCredential, err)
	}
	return nil
}
