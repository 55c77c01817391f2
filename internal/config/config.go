// Package config centralizes the CLI's directory and default-value
// resolution so every command and test shares one source of truth.
package config

import (
	"os"
	"path/filepath"
)

// DefaultHomeDirName is the directory created under the user's home
// directory to hold the identity file and TOFU pin store.
const DefaultHomeDirName = ".ciphera"

// IdentityFileName is the file name of the identity file within the home
// directory.
const IdentityFileName = "identity.bin"

// PinFileName is the file name of the TOFU pin store within the home
// directory.
const PinFileName = "pins.txt"

// ResolveHome returns home if non-empty, otherwise $HOME/.ciphera, creating
// it (mode 0700) if missing.
func ResolveHome(home string) (string, error) {
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		home = filepath.Join(dir, DefaultHomeDirName)
	}
	if err := os.MkdirAll(home, 0o700); err != nil {
		return "", err
	}
	return home, nil
}

// IdentityPath returns the identity file path under home.
func IdentityPath(home string) string { return filepath.Join(home, IdentityFileName) }

// PinPath returns the TOFU pin store path under home.
func PinPath(home string) string { return filepath.Join(home, PinFileName) }
