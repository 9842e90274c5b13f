package utils

import (
	"strings"

	"VidTube.com/pkg/errno"
	"github.com/google/uuid"
)

// NewID returns a fresh canonical identifier.
func NewID() string {
	return uuid.NewString()
}

// NormalizeID parses any accepted uuid spelling (braces, urn prefix, upper case)
// and returns the canonical lowercase form.
func NormalizeID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errno.InvalidIdentifierErr.WithMessage("identifier is empty")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", errno.InvalidIdentifierErr.WithMessage("invalid identifier: " + raw)
	}
	return id.String(), nil
}

// NormalizeIDs normalizes every id and fails on the first malformed one.
func NormalizeIDs(raws ...string) ([]string, error) {
	out := make([]string, 0, len(raws))
	for _, r := range raws {
		id, err := NormalizeID(r)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
