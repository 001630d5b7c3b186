// Package hero_inventory provides the remote document store that mirrors hero
// inventories across devices
package hero_inventory

//go:generate mockgen -destination=mock/mock_repository.go -package=heroinventorymock github.com/KirkDiggler/rpg-codex/internal/repositories/hero_inventory Repository

import (
	"context"
)

// Collection is the remote collection holding one document per inventory
const Collection = "hero_inventories"

// Repository defines the interface for the remote document store
type Repository interface {
	// Set stores body as the document with the given id, replacing any
	// previous version
	// Returns errors.InvalidArgument for missing collection, id or body
	// Returns errors.Unavailable (RemoteSyncError) when the store cannot be reached
	Set(ctx context.Context, input SetInput) (*SetOutput, error)

	// Get returns the document with the given id
	// Returns errors.InvalidArgument for missing collection or id
	// Returns errors.NotFound if the document does not exist
	// Returns errors.DataLoss if the stored document is not a JSON object
	// Returns errors.Unavailable (RemoteSyncError) when the store cannot be reached
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Query returns documents whose indexed field equals value, ordered by
	// document id
	// Returns errors.InvalidArgument for missing arguments or an unindexed field
	// Returns errors.Unavailable (RemoteSyncError) when the store cannot be reached
	Query(ctx context.Context, input QueryInput) (*QueryOutput, error)

	// List returns every document id in a collection, ordered
	// Returns errors.InvalidArgument for a missing collection
	// Returns errors.Unavailable (RemoteSyncError) when the store cannot be reached
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// Document is a stored remote document
type Document struct {
	ID   string
	Body map[string]any
}

// SetInput defines the input for storing a document
type SetInput struct {
	Collection string
	DocumentID string
	Body       map[string]any
}

// SetOutput defines the output for storing a document
type SetOutput struct{}

// GetInput defines the input for reading one document
type GetInput struct {
	Collection string
	DocumentID string
}

// GetOutput defines the output for reading one document
type GetOutput struct {
	Document *Document
}

// QueryInput defines the input for an equality query. A Limit of zero
// returns every match.
type QueryInput struct {
	Collection string
	Field      string
	Value      string
	Limit      int
}

// QueryOutput defines the output for an equality query
type QueryOutput struct {
	Documents []*Document
}

// ListInput defines the input for listing a collection
type ListInput struct {
	Collection string
}

// ListOutput defines the output for listing a collection
type ListOutput struct {
	DocumentIDs []string
}
