package application

import (
	"context"
	"encoding/base64"
	"errors"

	"vocalcart/internal/domain"
)

var ErrEmptyImage = errors.New("empty image")

type ImageGenerator interface {
	GenerateImage(ctx context.Context, name string) (*domain.Image, error)
}

// ImagePublisher turns a generated image into a URL the browser can load and
// drops it again once the item is removed.
type ImagePublisher interface {
	Publish(ctx context.Context, itemID string, img *domain.Image) (string, error)
	Discard(ctx context.Context, itemIDs ...string) error
}

type NoopImages struct{}

func (n *NoopImages) GenerateImage(_ context.Context, _ string) (*domain.Image, error) {
	return nil, nil
}

// DataURIPublisher inlines the image as a data URI.
type DataURIPublisher struct{}

func (p *DataURIPublisher) Publish(_ context.Context, _ string, img *domain.Image) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", ErrEmptyImage
	}
	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data), nil
}

func (p *DataURIPublisher) Discard(_ context.Context, _ ...string) error {
	return nil
}
