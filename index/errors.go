package index

import "errors"

var (
	// ErrEmptyEmbedding is returned when a query embedding has no dimensions.
	ErrEmptyEmbedding = errors.New("query embedding cannot be empty")

	// ErrMissingID is returned when a document is upserted without an ID.
	ErrMissingID = errors.New("document id required")

	// ErrEmptyFilter is returned when a filtered delete is attempted with no
	// filter entries.
	ErrEmptyFilter = errors.New("delete filter cannot be empty")
)
