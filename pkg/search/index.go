// Package search keeps a free-text index of video titles and descriptions.
package search

import "context"

type Document struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Index resolves free text into video ids. Search returns ids only; the
// caller still applies its own visibility filters.
type Index interface {
	Put(ctx context.Context, doc Document) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, text string, limit int) ([]string, error)
}
