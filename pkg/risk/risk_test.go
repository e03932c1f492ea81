package risk_test

import (
	"testing"

	"github.com/odysseus-imc/capexdb/pkg/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		msg         string
		consequence int
		likelihood  int
		res         risk.Rating
	}{
		{"catastrophic, almost certain", 5, 6, risk.Extreme},
		{"lowest", 1, 1, risk.Low},
		{"sum 3", 1, 2, risk.Low},
		{"sum 4", 2, 2, risk.Moderate},
		{"sum 6", 3, 3, risk.Moderate},
		{"sum 7", 3, 4, risk.High},
		{"sum 9", 4, 5, risk.High},
		{"sum 10", 5, 5, risk.Extreme},
	}

	for _, v := range tests {
		res, err := risk.Compute(v.consequence, v.likelihood)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestComputeOutOfRange(t *testing.T) {
	for _, v := range [][2]int{{0, 1}, {6, 1}, {1, 0}, {1, 7}, {-1, -1}} {
		_, err := risk.Compute(v[0], v[1])
		assert.Error(t, err, "%v", v)
	}
}

func TestComputeDependsOnSumOnly(t *testing.T) {
	prev := -1
	for sum := 2; sum <= 11; sum++ {
		var seen risk.Rating
		for c := risk.MinConsequence; c <= risk.MaxConsequence; c++ {
			l := sum - c
			if l < risk.MinLikelihood || l > risk.MaxLikelihood {
				continue
			}
			res, err := risk.Compute(c, l)
			require.NoError(t, err)
			if seen == "" {
				seen = res
			}
			assert.Equal(t, seen, res, "sum %d", sum)
		}
		assert.GreaterOrEqual(t, seen.Severity(), prev, "sum %d", sum)
		assert.GreaterOrEqual(t, seen.Severity(), 0)
		prev = seen.Severity()
	}
}

func TestMatrix(t *testing.T) {
	require.Len(t, risk.Matrix, len(risk.LikelihoodLabels))
	for _, row := range risk.Matrix {
		assert.Len(t, row, len(risk.ConsequenceLabels))
	}

	res, ok := risk.MatrixCell("Almost Certain", "Catastrophic")
	assert.True(t, ok)
	assert.Equal(t, risk.Extreme, res)

	res, ok = risk.MatrixCell("Rare", "Low")
	assert.True(t, ok)
	assert.Equal(t, risk.Low, res)

	_, ok = risk.MatrixCell("Often", "Low")
	assert.False(t, ok)
}
