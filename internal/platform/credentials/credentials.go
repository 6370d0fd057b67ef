// Package credentials reads and writes the local key file that supplies the
// field-service API key (a dotenv style MY_API_KEY=... file)
package credentials

import (
	"os"
	"path/filepath"
	"strings"

	perr "laborreport/internal/platform/errors"

	"github.com/joho/godotenv"
)

// KeyVar is the variable holding the API key inside the key file
const KeyVar = "MY_API_KEY"

// DefaultPath is the key file used when LABOR_KEY_FILE is unset
const DefaultPath = ".env"

// Load returns the API key stored at path. A missing file or empty key is a not-found error
func Load(path string) (string, error) {
	vals, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", perr.NotFoundf("key file %s not found", path)
		}
		return "", perr.Wrapf(err, perr.ErrorCodeIO, "read key file %s", path)
	}
	key := strings.TrimSpace(vals[KeyVar])
	if key == "" {
		return "", perr.NotFoundf("%s missing from %s", KeyVar, path)
	}
	return key, nil
}

// Save writes key to path, replacing the file; other variables in an existing file are kept
func Save(path, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return perr.InvalidArgf("empty API key")
	}
	vals, err := godotenv.Read(path)
	if err != nil {
		vals = map[string]string{}
	}
	vals[KeyVar] = key
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeIO, "create key dir %s", dir)
		}
	}
	if err := godotenv.Write(vals, path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "write key file %s", path)
	}
	return os.Chmod(path, 0o600)
}

// Ensure loads the key from path, falling back to ask and persisting its answer.
// ask returning an error (e.g. the user quit) aborts without touching the file
func Ensure(path string, ask func() (string, error)) (string, error) {
	key, err := Load(path)
	if err == nil {
		return key, nil
	}
	if !perr.IsCode(err, perr.ErrorCodeNotFound) || ask == nil {
		return "", err
	}
	key, err = ask()
	if err != nil {
		return "", err
	}
	if err := Save(path, key); err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}
