package upload_file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/murkotick/storefront-service/internal/app/media/contracts"
	"github.com/murkotick/storefront-service/internal/app/media/domain"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
)

type Request struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type Result struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

type Interactor struct {
	Store contracts.ObjectStore
	Clock clock.Clock
}

func NewInteractor(store contracts.ObjectStore, clk clock.Clock) *Interactor {
	return &Interactor{Store: store, Clock: clk}
}

// Execute stores the file and, for images, a JPEG thumbnail next to it. A
// thumbnail that cannot be produced is skipped; the upload still succeeds.
func (it *Interactor) Execute(ctx context.Context, req Request) (*Result, error) {
	if req.Body == nil || req.Filename == "" {
		return nil, domain.ErrNoFile
	}
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, domain.ErrNoFile
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	name := domain.ObjectName(req.Filename, it.Clock.Now())
	url, err := it.Store.Put(ctx, name, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", name, err)
	}
	res := &Result{URL: url}
	logger := log.Ctx(ctx).With().Str("component", "media").Str("object", name).Logger()

	if domain.IsImage(contentType) {
		thumb, err := thumbnail(data)
		if err != nil {
			logger.Warn().Err(err).Msg("thumbnail skipped")
		} else if res.ThumbnailURL, err = it.Store.Put(ctx, domain.ThumbnailName(name), "image/jpeg", bytes.NewReader(thumb)); err != nil {
			logger.Warn().Err(err).Msg("thumbnail upload failed")
		}
	}

	logger.Info().Int("bytes", len(data)).Msg("file uploaded")
	return res, nil
}

func thumbnail(data []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > domain.ThumbnailMaxSourcePixels {
		return nil, fmt.Errorf("%w: %dx%d", domain.ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() > domain.ThumbnailMaxSize || b.Dy() > domain.ThumbnailMaxSize {
		img = imaging.Fit(img, domain.ThumbnailMaxSize, domain.ThumbnailMaxSize, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(domain.ThumbnailQuality)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
