package contracts

import (
	"context"
	"io"
)

type ObjectStore interface {
	Put(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// Synthesizer returns 24 kHz 16-bit mono PCM for text.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
