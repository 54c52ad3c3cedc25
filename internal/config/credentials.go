package config

import (
	"fmt"
	"log/slog"

	"gopkg.in/ini.v1"

	"github.com/carlcarl/imgurup/internal/model"
)

// Names inside the credential INI file.
const (
	tokenSection    = "Token"
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// CredentialStore reads and writes the persisted token pair.
//
// The store exclusively owns the Credentials entity: other components load
// through it on every use instead of caching a private copy, so a refresh
// performed mid-flight is visible to the next call.
type CredentialStore struct {
	path string
	log  *slog.Logger
}

// NewCredentialStore returns a store backed by the INI file at path.
func NewCredentialStore(path string, log *slog.Logger) *CredentialStore {
	return &CredentialStore{path: path, log: log}
}

// Load reads the token pair from the config file.
//
// A missing file or missing keys is a normal first-run state and yields zero
// credentials with a nil error. A half-present pair is normalized to absent
// so the both-or-none invariant holds.
func (s *CredentialStore) Load() (model.Credentials, error) {
	file, err := ini.LooseLoad(s.path)
	if err != nil {
		return model.Credentials{}, fmt.Errorf("read credentials %s: %w", s.path, err)
	}

	section := file.Section(tokenSection)
	creds := model.Credentials{
		AccessToken:  section.Key(accessTokenKey).String(),
		RefreshToken: section.Key(refreshTokenKey).String(),
	}
	if !creds.Complete() {
		if creds.AccessToken != "" || creds.RefreshToken != "" {
			s.log.Warn("credential file holds a partial token pair, treating as first run", "path", s.path)
		}
		return model.Credentials{}, nil
	}
	return creds, nil
}

// Save writes the token pair back, merging into the existing file so
// unrelated sections survive.
func (s *CredentialStore) Save(creds model.Credentials) error {
	file, err := ini.LooseLoad(s.path)
	if err != nil {
		return fmt.Errorf("read credentials %s: %w", s.path, err)
	}

	section := file.Section(tokenSection)
	section.Key(accessTokenKey).SetValue(creds.AccessToken)
	section.Key(refreshTokenKey).SetValue(creds.RefreshToken)

	if err := file.SaveTo(s.path); err != nil {
		return fmt.Errorf("write credentials %s: %w", s.path, err)
	}
	s.log.Debug("credentials saved", "path", s.path)
	return nil
}
