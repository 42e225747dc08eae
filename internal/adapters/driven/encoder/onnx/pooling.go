package onnx

// maskEpsilon floors the mask weight sum so an all-zero attention mask
// cannot divide by zero.
const maskEpsilon = 1e-9

// meanPool computes the attention-mask-weighted mean of the token
// hidden states. hidden is laid out [1, seqLen, dims] row-major; tokens
// with mask 0 (padding) contribute nothing to the average.
func meanPool(hidden []float32, mask []int, seqLen, dims int) []float32 {
	sums := make([]float32, dims)
	var weight float32

	for t := 0; t < seqLen; t++ {
		if t >= len(mask) || mask[t] == 0 {
			continue
		}
		weight++
		row := hidden[t*dims : (t+1)*dims]
		for d, v := range row {
			sums[d] += v
		}
	}

	if weight < maskEpsilon {
		weight = maskEpsilon
	}
	for d := range sums {
		sums[d] /= weight
	}
	return sums
}
