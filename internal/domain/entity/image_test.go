package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageInfoHeightForWidth(t *testing.T) {
	i := ImageInfo{Width: 400, Height: 300}
	require.InDelta(t, 386.25, i.HeightForWidth(515), 1e-9)
	require.False(t, i.Empty())

	require.True(t, ImageInfo{Width: 0, Height: 10}.Empty())
	require.Zero(t, ImageInfo{}.HeightForWidth(100))
}
