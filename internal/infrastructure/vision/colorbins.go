package vision

import (
	"errors"
	"fmt"
	"os"

	"github.com/sbinet/npyio"

	"holoscope/internal/domain/entity"
)

const (
	// NumColorBins число квантованных цветовых классов сети
	NumColorBins = 313
	// BinLogitScale множитель логитов перед softmax (слой conv8_313_rh)
	BinLogitScale = 2.606
	// InputSize сторона входа сети
	InputSize = 224
	// MeanLuminance вычитается из канала L перед инференсом
	MeanLuminance = 50
)

// ColorBins центры цветовых классов в пространстве (a, b)
type ColorBins [NumColorBins][2]float32

// LoadColorBins читает таблицу центров классов из .npy (313x2 или плоский массив из 626 чисел)
func LoadColorBins(path string) (*ColorBins, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: color bin table: %v", entity.ErrInvalidInput, err)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: color bin table %s: %v", entity.ErrInvalidInput, path, err)
	}
	if r.Header.Descr.Fortran {
		return nil, fmt.Errorf("%w: color bin table %s: fortran order is not supported", entity.ErrInvalidInput, path)
	}

	n := 1
	for _, dim := range r.Header.Descr.Shape {
		n *= dim
	}
	if n != NumColorBins*2 {
		return nil, fmt.Errorf("%w: color bin table %s: want %d values, got shape %v",
			entity.ErrInvalidInput, path, NumColorBins*2, r.Header.Descr.Shape)
	}

	values, err := readFloats(r, n)
	if err != nil {
		return nil, fmt.Errorf("%w: color bin table %s: %v", entity.ErrInvalidInput, path, err)
	}

	var bins ColorBins
	for i := 0; i < NumColorBins; i++ {
		bins[i][0] = float32(values[2*i])
		bins[i][1] = float32(values[2*i+1])
	}
	return &bins, nil
}

func readFloats(r *npyio.Reader, n int) ([]float64, error) {
	out := make([]float64, n)
	switch r.Header.Descr.Type {
	case "<f8", "float64":
		if err := r.Read(&out); err != nil {
			return nil, err
		}
	case "<f4", "float32":
		raw := make([]float32, n)
		if err := r.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}
	case "<i8", "int64":
		raw := make([]int64, n)
		if err := r.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}
	case "<i4", "int32":
		raw := make([]int32, n)
		if err := r.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}
	default:
		return nil, errors.New("unsupported dtype " + r.Header.Descr.Type)
	}
	return out, nil
}
