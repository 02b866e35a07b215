package synthesize_speech

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/murkotick/storefront-service/internal/app/media/contracts"
	"github.com/murkotick/storefront-service/internal/app/media/domain"
)

type Interactor struct {
	Synthesizer contracts.Synthesizer
}

func NewInteractor(s contracts.Synthesizer) *Interactor {
	return &Interactor{Synthesizer: s}
}

// Execute returns the spoken text as a data:audio/wav;base64 URL.
func (it *Interactor) Execute(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyText
	}
	pcm, err := it.Synthesizer.Synthesize(ctx, text)
	if err != nil {
		return "", fmt.Errorf("synthesize speech: %w", err)
	}
	log.Ctx(ctx).Debug().Str("component", "media").Int("pcm_bytes", len(pcm)).Msg("speech synthesized")
	return domain.AudioDataURL(pcm), nil
}
