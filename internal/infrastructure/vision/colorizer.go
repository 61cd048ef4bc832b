//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"holoscope/internal/domain/entity"
	"holoscope/internal/domain/port"
)

// logitsLayer последний свёрточный слой сети; масштаб и декодирование
// классов (conv8_313_rh, class8_ab) выполняются в decodeAB.
const logitsLayer = "conv8_313"

// Colorizer сеть раскрашивания Caffe, загруженная один раз.
type Colorizer struct {
	net  gocv.Net
	bins *ColorBins
}

// NewColorizer загружает архитектуру, веса и таблицу цветовых классов.
func NewColorizer(prototxt, weights, colorBins string) (*Colorizer, error) {
	for _, path := range []string{prototxt, weights} {
		st, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: model asset: %v", entity.ErrInvalidInput, err)
		}
		if st.Size() == 0 {
			return nil, fmt.Errorf("%w: model asset %s is empty", entity.ErrInvalidInput, path)
		}
	}

	bins, err := LoadColorBins(colorBins)
	if err != nil {
		return nil, err
	}

	net := gocv.ReadNetFromCaffe(prototxt, weights)
	if net.Empty() {
		return nil, fmt.Errorf("%w: cannot read caffe network %s", entity.ErrInvalidInput, prototxt)
	}
	if !hasLayer(net, logitsLayer) {
		net.Close()
		return nil, fmt.Errorf("%w: network has no %s layer", entity.ErrInvalidInput, logitsLayer)
	}

	return &Colorizer{net: net, bins: bins}, nil
}

// Close освобождает сеть
func (c *Colorizer) Close() error {
	return c.net.Close()
}

// Colorize раскрашивает изображение и возвращает PNG того же размера.
func (c *Colorizer) Colorize(ctx context.Context, imageData []byte) ([]byte, error) {
	_ = ctx
	src, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	width, height := src.Cols(), src.Rows()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: zero-area image", entity.ErrInvalidInput)
	}

	// 8 бит -> float [0,1] -> Lab
	scaled := gocv.NewMat()
	defer scaled.Close()
	src.ConvertToWithParams(&scaled, gocv.MatTypeCV32F, 1.0/255, 0)

	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(scaled, &lab, gocv.ColorBGRToLab)

	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(lab, &small, image.Pt(InputSize, InputSize), 0, 0, gocv.InterpolationLinear)

	smallChannels := gocv.Split(small)
	for i := range smallChannels {
		defer smallChannels[i].Close()
	}
	luminance := smallChannels[0]
	luminance.SubtractFloat(MeanLuminance)

	blob := gocv.BlobFromImage(luminance, 1.0, image.Pt(InputSize, InputSize), gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	c.net.SetInput(blob, "")
	out := c.net.Forward(logitsLayer)
	defer out.Close()
	if out.Empty() {
		return nil, errors.New("colorization inference returned no output")
	}

	dims := out.Size()
	if len(dims) != 4 || dims[1] != NumColorBins {
		return nil, fmt.Errorf("unexpected network output shape %v", dims)
	}
	outH, outW := dims[2], dims[3]

	logits, err := out.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read network output: %w", err)
	}
	a, b, err := decodeAB(logits, c.bins, outH, outW)
	if err != nil {
		return nil, err
	}

	aFull := resizePlane(a, outH, outW, width, height)
	defer aFull.Close()
	bFull := resizePlane(b, outH, outW, width, height)
	defer bFull.Close()

	// исходная яркость + предсказанная цветность
	labChannels := gocv.Split(lab)
	for i := range labChannels {
		defer labChannels[i].Close()
	}
	merged := gocv.NewMat()
	defer merged.Close()
	gocv.Merge([]gocv.Mat{labChannels[0], aFull, bFull}, &merged)

	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(merged, &bgr, gocv.ColorLabToBGR)

	// насыщение при переводе в 8 бит отсекает значения вне [0,1]
	result := gocv.NewMat()
	defer result.Close()
	bgr.ConvertToWithParams(&result, gocv.MatTypeCV8U, 255, 0)

	buf, err := gocv.IMEncode(gocv.PNGFileExt, result)
	if err != nil {
		return nil, fmt.Errorf("encode colorized image: %w", err)
	}
	defer buf.Close()

	return append([]byte(nil), buf.GetBytes()...), nil
}

// resizePlane собирает Mat из плоского массива и растягивает до размера изображения.
func resizePlane(values []float32, rows, cols, width, height int) gocv.Mat {
	plane := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV32F)
	defer plane.Close()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			plane.SetFloatAt(y, x, values[y*cols+x])
		}
	}

	full := gocv.NewMat()
	gocv.Resize(plane, &full, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)
	return full
}

// decodeToMat превращает байты изображения в трёхканальный gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	if len(imageData) == 0 {
		return gocv.NewMat(), fmt.Errorf("%w: empty image data", entity.ErrInvalidInput)
	}
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), fmt.Errorf("%w: failed to decode image", entity.ErrInvalidInput)
}

func hasLayer(net gocv.Net, name string) bool {
	for _, n := range net.GetLayerNames() {
		if n == name {
			return true
		}
	}
	return false
}

var _ port.Colorizer = (*Colorizer)(nil)
