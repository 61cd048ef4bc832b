package port

import "context"

// Colorizer интерфейс модели раскрашивания
type Colorizer interface {
	// Colorize раскрашивает изображение (PNG/JPEG) и возвращает PNG того же размера
	Colorize(ctx context.Context, imageData []byte) ([]byte, error)
}

// Camera интерфейс захвата кадра с камеры
type Camera interface {
	// Capture снимает один кадр с устройства и возвращает его в PNG
	Capture(ctx context.Context, device int) ([]byte, error)

	// Probe перечисляет устройства, с которых удаётся прочитать кадр
	Probe(ctx context.Context, maxDevices int) []int
}
