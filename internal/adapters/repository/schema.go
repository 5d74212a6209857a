package repository

import (
	_ "embed"
	"fmt"
	"os"
)

// DefaultSchema is the built-in star-schema DDL.
//
//go:embed schema.sql
var DefaultSchema string

// LoadSchema reads the DDL at path, or returns DefaultSchema when path is empty.
func LoadSchema(path string) (string, error) {
	if path == "" {
		return DefaultSchema, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrSchema, path, err)
	}
	return string(b), nil
}
