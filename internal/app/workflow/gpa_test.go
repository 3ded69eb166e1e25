package workflow_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/workflow"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
)

func TestEncodeGPA(t *testing.T) {
	cases := []struct {
		display  float64
		expected uint16
	}{
		{0, 0},
		{2.0, 200},
		{3.25, 325},
		{3.999, 400},
		{4.0, 400},
		{1.004, 100},
	}
	for _, tc := range cases {
		stored, err := workflow.EncodeGPA(tc.display)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, stored, "display %v", tc.display)
	}
}

func TestEncodeGPARejectsOutOfRange(t *testing.T) {
	for _, display := range []float64{-0.01, 4.01, 100, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := workflow.EncodeGPA(display)
		assert.ErrorIs(t, err, apperrors.ErrInvalidGPA, "display %v", display)
	}
}

func TestParseGPA(t *testing.T) {
	stored, err := workflow.ParseGPA(" 3.25 ")
	require.NoError(t, err)
	assert.Equal(t, uint16(325), stored)
}

func TestParseGPARejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "three", "3,25", "NaN"} {
		_, err := workflow.ParseGPA(input)
		assert.ErrorIs(t, err, apperrors.ErrInvalidGPA, "input %q", input)
	}
}

func TestGPARoundTrip(t *testing.T) {
	for stored := uint16(0); stored <= workflow.MaxGPA; stored += 25 {
		encoded, err := workflow.EncodeGPA(workflow.DecodeGPA(stored))
		require.NoError(t, err)
		assert.Equal(t, stored, encoded)
	}
}

func TestFormatGPA(t *testing.T) {
	assert.Equal(t, "3.25", workflow.FormatGPA(325))
	assert.Equal(t, "0.00", workflow.FormatGPA(0))
	assert.Equal(t, "4.00", workflow.FormatGPA(400))
	assert.Equal(t, "0.05", workflow.FormatGPA(5))
}

func TestEligibleForGraduation(t *testing.T) {
	assert.True(t, workflow.EligibleForGraduation(7, 200))
	assert.True(t, workflow.EligibleForGraduation(8, 400))
	assert.False(t, workflow.EligibleForGraduation(6, 400))
	assert.False(t, workflow.EligibleForGraduation(8, 199))
	assert.False(t, workflow.EligibleForGraduation(0, 0))
}
