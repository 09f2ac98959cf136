// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SignGate Contributors

// Package xdg locates SignGate's XDG Base Directory config file.
package xdg

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/samber/oops"
)

const (
	appName = "signgate"

	// ConfigFileName is the name of the config file inside ConfigDir.
	ConfigFileName = "config.yaml"
)

// ConfigDir returns the XDG config directory for signgate.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home := os.Getenv("HOME")
		if home == "" {
			return "", oops.Code("XDG_NO_HOME").Errorf("neither XDG_CONFIG_HOME nor HOME is set")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName), nil
}

// DefaultConfigFile returns the path of the config file in ConfigDir when it
// exists. It returns "" with no error when there is nothing to load.
func DefaultConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", nil //nolint:nilerr // no home directory means no default file
	}
	path := filepath.Join(dir, ConfigFileName)
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", nil
	case err != nil:
		return "", oops.Code("XDG_CONFIG_UNREADABLE").With("path", path).Wrap(err)
	case info.IsDir():
		return "", oops.Code("XDG_CONFIG_UNREADABLE").With("path", path).Errorf("config path is a directory")
	}
	return path, nil
}
