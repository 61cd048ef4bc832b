//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"fmt"

	"holoscope/internal/domain/entity"
	"holoscope/internal/domain/port"
)

// Colorizer заглушка для сборки без OpenCV.
type Colorizer struct{}

// NewColorizer возвращает ошибку, если сборка без тега gocv.
func NewColorizer(prototxt, weights, colorBins string) (*Colorizer, error) {
	_, _ = prototxt, weights
	// таблицу всё равно проверяем, чтобы ошибки конфигурации были видны сразу
	if _, err := LoadColorBins(colorBins); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: gocv build tag is not enabled", entity.ErrColorizationUnavailable)
}

func (c *Colorizer) Close() error {
	return nil
}

// Colorize возвращает ошибку, если сборка без тега gocv.
func (c *Colorizer) Colorize(ctx context.Context, imageData []byte) ([]byte, error) {
	_ = ctx
	_ = imageData
	return nil, fmt.Errorf("%w: gocv build tag is not enabled", entity.ErrColorizationUnavailable)
}

var _ port.Colorizer = (*Colorizer)(nil)
