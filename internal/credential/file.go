package credential

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// credentialFileName is the fixed name of the credential record inside the
// till config directory.
const credentialFileName = "credential.json"

// FileStore persists the credential as a JSON file under the user's config
// directory, so a login survives process restarts on the same terminal.
type FileStore struct {
	path string
}

// NewFileStore creates a store rooted at the default per-user location
// (e.g. ~/.config/till/credential.json on Linux).
func NewFileStore() (*FileStore, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return NewFileStoreAt(filepath.Join(configDir, "till", credentialFileName)), nil
}

// NewFileStoreAt creates a store backed by an explicit file path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file the credential is stored at.
func (s *FileStore) Path() string {
	return s.path
}

// Get reads the stored credential. A missing, empty, or unparseable file is
// reported as signed out rather than as an error.
func (s *FileStore) Get() (*Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read credential file: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		// Corrupt record: same as not authenticated.
		return nil, nil
	}
	if cred.AccessToken == "" {
		return nil, nil
	}
	return &cred, nil
}

// Save writes the credential, creating the parent directory if needed. The
// file is restricted to the current user since it holds a bearer token.
func (s *FileStore) Save(cred *Credential) error {
	if cred == nil || cred.AccessToken == "" {
		return fmt.Errorf("cannot save credential without an access token")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credential directory: %w", err)
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	return nil
}

// Clear removes the credential file. Clearing when no file exists is a
// no-op.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credential file: %w", err)
	}
	return nil
}

// Token returns the stored access token for auth injection.
func (s *FileStore) Token() (string, bool) {
	cred, err := s.Get()
	if err != nil || cred == nil {
		return "", false
	}
	return cred.AccessToken, true
}
