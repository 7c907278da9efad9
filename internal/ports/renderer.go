package ports

import "github.com/bft-labs/runctl/internal/domain"

// Renderer formats a status frame.
type Renderer interface {
	Render(view domain.StatusView) string
}

// RenderFunc adapts an ordinary function to the Renderer interface.
type RenderFunc func(view domain.StatusView) string

// Render calls f(view).
func (f RenderFunc) Render(view domain.StatusView) string {
	return f(view)
}
