package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateViews(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend: unsupported value %q (expected %q or %q)", c.Storage.Backend, BackendFile, BackendSQLite)
	}
	if c.Storage.Namespace == "" {
		return errors.New("storage.namespace must be set")
	}
	for _, r := range c.Storage.Namespace {
		if !isNamespaceRune(r) {
			return fmt.Errorf("storage.namespace: invalid character %q in %q", r, c.Storage.Namespace)
		}
	}
	return nil
}

func isNamespaceRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	}
	return false
}

func (c *Config) validateViews() error {
	if c.Views.PageSize < 1 || c.Views.PageSize > maxPageSize {
		return fmt.Errorf("views.page_size must be between 1 and %d", maxPageSize)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
