//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"fmt"

	"holoscope/internal/domain/entity"
	"holoscope/internal/domain/port"
)

// Camera заглушка для сборки без OpenCV.
type Camera struct {
	WarmupFrames int
}

func NewCamera() *Camera {
	return &Camera{WarmupFrames: 5}
}

// Capture возвращает ошибку, если сборка без тега gocv.
func (c *Camera) Capture(ctx context.Context, device int) ([]byte, error) {
	_ = ctx
	_ = device
	return nil, fmt.Errorf("%w: gocv build tag is not enabled", entity.ErrCameraUnavailable)
}

// Probe без OpenCV камер нет
func (c *Camera) Probe(ctx context.Context, maxDevices int) []int {
	return nil
}

var _ port.Camera = (*Camera)(nil)
