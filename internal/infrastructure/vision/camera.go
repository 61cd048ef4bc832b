//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"holoscope/internal/domain/port"
)

// Camera снимает одиночные кадры через OpenCV VideoCapture.
type Camera struct {
	WarmupFrames int // кадры, пропускаемые до снимка (автоэкспозиция)
}

// NewCamera создаёт камеру с настройками по умолчанию
func NewCamera() *Camera {
	return &Camera{WarmupFrames: 5}
}

// Capture открывает устройство, пропускает прогревочные кадры и возвращает кадр в PNG.
func (c *Camera) Capture(ctx context.Context, device int) ([]byte, error) {
	webcam, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", device, err)
	}
	defer webcam.Close()

	if !webcam.IsOpened() {
		return nil, fmt.Errorf("cannot open camera %d", device)
	}

	frame := gocv.NewMat()
	defer frame.Close()

	for i := 0; i <= c.WarmupFrames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ok := webcam.Read(&frame); !ok {
			return nil, fmt.Errorf("failed to read from camera %d", device)
		}
	}
	if frame.Empty() {
		return nil, fmt.Errorf("camera %d returned an empty frame", device)
	}

	buf, err := gocv.IMEncode(gocv.PNGFileExt, frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	return append([]byte(nil), buf.GetBytes()...), nil
}

// Probe возвращает номера устройств из [0, maxDevices), с которых читается кадр.
func (c *Camera) Probe(ctx context.Context, maxDevices int) []int {
	var found []int
	for i := 0; i < maxDevices; i++ {
		if ctx.Err() != nil {
			break
		}
		webcam, err := gocv.OpenVideoCapture(i)
		if err != nil {
			continue
		}
		frame := gocv.NewMat()
		if webcam.IsOpened() && webcam.Read(&frame) && !frame.Empty() {
			found = append(found, i)
		}
		frame.Close()
		webcam.Close()
	}
	return found
}

var _ port.Camera = (*Camera)(nil)
