// Package credential stores the backend service key in the operating
// system keyring so it never lands in the config file. A file-backed
// ring is the fallback on headless machines.
package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "dispatch"

// ringConfig is shared by every operation so all of them resolve to the
// same backing store.
var ringConfig = keyring.Config{
	ServiceName: serviceName,
	AllowedBackends: []keyring.BackendType{
		keyring.KeychainBackend,
		keyring.SecretServiceBackend,
		keyring.WinCredBackend,
		keyring.PassBackend,
		keyring.FileBackend,
	},
	FileDir:                  "~/.config/dispatch/credentials",
	FilePasswordFunc:         keyring.FixedStringPrompt("dispatch-file-key"),
	KeychainTrustApplication: true,
}

// Get reads the service key stored under the given name.
func Get(name string) (string, error) {
	ring, err := keyring.Open(ringConfig)
	if err != nil {
		return "", fmt.Errorf("opening keyring: %w", err)
	}

	item, err := ring.Get(name)
	if err != nil {
		return "", fmt.Errorf("reading credential %q: %w", name, err)
	}
	return string(item.Data), nil
}

// Set stores a service key under the given name, replacing any
// existing value. Used by the set-key subcommand.
func Set(name, value string) error {
	ring, err := keyring.Open(ringConfig)
	if err != nil {
		return fmt.Errorf("opening keyring: %w", err)
	}

	if err := ring.Set(keyring.Item{Key: name, Data: []byte(value)}); err != nil {
		return fmt.Errorf("storing credential %q: %w", name, err)
	}
	return nil
}

// Delete removes the service key stored under the given name.
func Delete(name string) error {
	ring, err := keyring.Open(ringConfig)
	if err != nil {
		return fmt.Errorf("opening keyring: %w", err)
	}

	if err := ring.Remove(name); err != nil {
		return fmt.Errorf("removing credential %q: %w", name, err)
	}
	return nil
}
