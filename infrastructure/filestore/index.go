package filestore

import (
	"fmt"
	"os"
	"path/filepath"

	"kyc.igtapps.io/application/utils"
	"kyc.igtapps.io/infrastructure/logger"
)

// Filestore keeps capture artifacts on a local volume. Document images are
// PII: they never leave this host and transient artifacts must be removed on
// every exit path.
type Filestore struct {
	root string
}

var Store *Filestore

func InitialiseFilestore() {
	root := os.Getenv("UPLOAD_DIR")
	if root == "" {
		root = "./uploads"
	}
	Store = &Filestore{root: root}
	logger.Info("filestore initialised", logger.LoggerOptions{
		Key:  "root",
		Data: root,
	})
}

// Save writes a buffer under the named folder and returns its path.
func (fs *Filestore) Save(folder string, data []byte) (string, error) {
	dir := filepath.Join(fs.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create upload folder %s: %w", dir, err)
	}
	path := filepath.Join(dir, utils.GenerateULIDString()+".jpg")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("could not persist upload: %w", err)
	}
	return path, nil
}

// Read loads a previously saved artifact.
func (fs *Filestore) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Delete removes a stored artifact. Missing files are not an error; the
// cleanup contract is idempotent.
func (fs *Filestore) Delete(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warning("could not remove stored artifact", logger.LoggerOptions{
			Key:  "path",
			Data: path,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}

// Scope is a set of transient artifacts deleted together when the request
// finishes, whatever the outcome.
type Scope struct {
	store *Filestore
	paths []string
}

func (fs *Filestore) NewScope() *Scope {
	return &Scope{store: fs}
}

// Save writes a transient artifact into the scope.
func (s *Scope) Save(folder string, data []byte) (string, error) {
	path, err := s.store.Save(folder, data)
	if err != nil {
		return "", err
	}
	s.paths = append(s.paths, path)
	return path, nil
}

// Cleanup deletes every artifact in the scope. Safe to defer and safe to
// call more than once.
func (s *Scope) Cleanup() {
	for _, path := range s.paths {
		s.store.Delete(path)
	}
	s.paths = nil
}
