package services

import "fmt"

// Tensor is a dense float32 tensor in row-major order. Images use NHWC.
type Tensor struct {
	Shape []int
	Data  []float32
}

func NewTensor(shape []int, data []float32) (Tensor, error) {
	if n := shapeSize(shape); n != len(data) {
		return Tensor{}, fmt.Errorf("tensor shape %v needs %d values, got %d", shape, n, len(data))
	}
	return Tensor{Shape: append([]int(nil), shape...), Data: data}, nil
}

func shapeSize(shape []int) int {
	if len(shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// SameShape compares dimensions exactly.
func SameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ImageShape is [batch, height, width, channels] for an NHWC image tensor.
func ImageShape(height, width int) []int {
	return []int{1, height, width, 3}
}
