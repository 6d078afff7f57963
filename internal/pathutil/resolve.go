// Package pathutil provides the path resolution and sandboxing logic
// that sits in front of every storage backend.
package pathutil

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/silolabs/silo/backends"
)

// Resolve validates and normalizes a caller-supplied relative path.
// It rejects empty and absolute paths, collapses "." and ".." segments,
// and fails with ErrInvalidPath when the path would climb above the
// storage root. The result is a clean, slash-separated key with no
// leading slash, usable both as an object key and as a path fragment
// under a directory root.
//
// Resolution is purely segment-based; no filesystem metadata is
// consulted, so the same rules apply whether the root is a directory,
// a bucket, or a container.
func Resolve(rel string) (string, error) {
	if rel == "" {
		return "", backends.ErrInvalidPath
	}

	// Reject absolute paths outright, in both slash and native form.
	if strings.HasPrefix(rel, "/") || filepath.IsAbs(rel) {
		return "", backends.ErrInvalidPath
	}

	// NUL and control characters are never part of a legitimate path.
	for _, r := range rel {
		if r == 0 || (r < 32 && r != '\t') {
			return "", backends.ErrInvalidPath
		}
	}

	// Walk the segments and track depth so that ".." can never take
	// the path above the root, even transiently.
	depth := 0
	for _, seg := range strings.Split(rel, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			depth--
			if depth < 0 {
				return "", backends.ErrInvalidPath
			}
		default:
			depth++
		}
	}

	cleaned := path.Clean(rel)
	if cleaned == "." || cleaned == "" {
		return "", backends.ErrInvalidPath
	}

	return cleaned, nil
}

// JoinUnder resolves rel and joins it onto the directory root,
// verifying that the result remains a descendant of root. Used by the
// local filesystem backend, where the root is a real directory.
func JoinUnder(root, rel string) (string, error) {
	key, err := Resolve(rel)
	if err != nil {
		return "", err
	}

	cleanRoot := filepath.Clean(root)
	joined := filepath.Join(cleanRoot, filepath.FromSlash(key))

	relPath, err := filepath.Rel(cleanRoot, joined)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", backends.ErrInvalidPath
	}

	return joined, nil
}
