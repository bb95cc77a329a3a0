package model

import "context"

// ContentSource supplies board content. Implementations own where it comes from.
type ContentSource interface {
	Load() (Content, error)
}

// ContentWatcher delivers fresh content whenever the underlying source changes.
type ContentWatcher interface {
	ContentSource
	Watch(ctx context.Context, fn func(Content)) error
}
