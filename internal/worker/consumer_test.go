package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBackoff(t *testing.T) {
	testCases := []struct {
		retryCount int
		want       int32
	}{
		{0, 10},
		{1, 20},
		{2, 40},
		{5, 320},
		{8, 2560},
		{9, 3600},  // capped at 1 hour
		{20, 3600}, // stays capped
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, CalculateBackoff(tc.retryCount), "retry count %d", tc.retryCount)
	}
}
