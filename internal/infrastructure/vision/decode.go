package vision

import (
	"fmt"
	"math"

	"holoscope/internal/domain/entity"
)

// decodeAB переводит логиты сети (NCHW, N=1, C=313) в каналы a и b:
// логиты умножаются на BinLogitScale, проходят softmax по классам,
// результат — матожидание центров классов.
func decodeAB(logits []float32, bins *ColorBins, h, w int) (a, b []float32, err error) {
	plane := h * w
	if plane <= 0 || len(logits) != NumColorBins*plane {
		return nil, nil, fmt.Errorf("%w: unexpected network output: %d values for %dx%d", entity.ErrInvalidInput, len(logits), w, h)
	}

	a = make([]float32, plane)
	b = make([]float32, plane)
	for p := 0; p < plane; p++ {
		maxLogit := math.Inf(-1)
		for k := 0; k < NumColorBins; k++ {
			if v := float64(logits[k*plane+p]) * BinLogitScale; v > maxLogit {
				maxLogit = v
			}
		}

		var sum, sa, sb float64
		for k := 0; k < NumColorBins; k++ {
			e := math.Exp(float64(logits[k*plane+p])*BinLogitScale - maxLogit)
			sum += e
			sa += e * float64(bins[k][0])
			sb += e * float64(bins[k][1])
		}
		if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
			return nil, nil, fmt.Errorf("%w: network output is not finite", entity.ErrInvalidInput)
		}
		a[p] = float32(sa / sum)
		b[p] = float32(sb / sum)
	}
	return a, b, nil
}
