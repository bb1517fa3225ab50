package storage

import (
	"errors"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrInvalidKey = errors.New("storage: invalid key")
	ErrNotFound   = errors.New("storage: file not found")
)

const maxBaseNameLen = 120

// NewKey builds "<uuid>_<base name>" from a client-supplied file name.
// Directory parts and path separators of either platform are dropped.
func NewKey(originalName string) string {
	return uuid.NewString() + "_" + SanitizeName(originalName)
}

// SanitizeName reduces a client file name to a safe base name.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == 0x7f:
			return -1
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		name = "file"
	}
	if len(name) > maxBaseNameLen {
		start := len(name) - maxBaseNameLen
		for start < len(name) && !utf8.RuneStart(name[start]) {
			start++
		}
		name = name[start:]
	}
	return name
}

// ValidateKey rejects keys that could escape the storage root or name a
// hidden temp file.
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, ".") || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}
