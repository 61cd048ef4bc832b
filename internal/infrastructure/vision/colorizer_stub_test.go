//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"holoscope/internal/domain/entity"
)

func TestStubColorizer_Unavailable(t *testing.T) {
	values := make([]float64, NumColorBins*2)
	_, err := NewColorizer("a.prototxt", "b.caffemodel", writeNpy(t, values))
	require.ErrorIs(t, err, entity.ErrColorizationUnavailable)

	_, err = (&Colorizer{}).Colorize(context.Background(), []byte{1})
	require.ErrorIs(t, err, entity.ErrColorizationUnavailable)
}

func TestStubColorizer_BadTable(t *testing.T) {
	_, err := NewColorizer("a", "b", os.DevNull)
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestStubCamera(t *testing.T) {
	_, err := NewCamera().Capture(context.Background(), 0)
	require.ErrorIs(t, err, entity.ErrCameraUnavailable)
	require.Empty(t, NewCamera().Probe(context.Background(), 5))
}
