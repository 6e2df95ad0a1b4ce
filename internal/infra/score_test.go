package infra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceScore_Float(t *testing.T) {
	assert.Equal(t, 673, CoerceScore(673.312))
}

func TestCoerceScore_RoundsNotTruncates(t *testing.T) {
	assert.Equal(t, 674, CoerceScore(673.5))
	assert.Equal(t, 674, CoerceScore(673.812))
}

func TestCoerceScore_String(t *testing.T) {
	assert.Equal(t, 673, CoerceScore("673.312"))
	assert.Equal(t, 674, CoerceScore(" 673.9 "))
}

func TestCoerceScore_Zero(t *testing.T) {
	assert.Equal(t, 0, CoerceScore(0.0))
	assert.Equal(t, 0, CoerceScore("0"))
}

func TestCoerceScore_Garbage(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"nil", nil},
		{"NaN", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
		{"non-numeric string", "not-a-score"},
		{"empty string", ""},
		{"negative float", -12.7},
		{"unsupported type", []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0, CoerceScore(tt.input))
		})
	}
}

func TestCoerceScore_AlwaysNonNegative(t *testing.T) {
	inputs := []interface{}{673.312, -1.0, "999.99", "-5", math.NaN(), 0, int64(812)}
	for _, in := range inputs {
		assert.GreaterOrEqual(t, CoerceScore(in), 0, "input: %v", in)
	}
}

func TestCoerceScore_Ints(t *testing.T) {
	assert.Equal(t, 812, CoerceScore(812))
	assert.Equal(t, 812, CoerceScore(int64(812)))
}
