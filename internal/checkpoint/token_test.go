package checkpoint_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/checkpoint/internal/checkpoint"
)

func TestNewTokenUsesSortableFixedWidthLayout(testInstance *testing.T) {
	runStart := time.Date(2024, time.March, 5, 9, 7, 3, 0, time.Local)
	runToken := checkpoint.NewToken(runStart)
	require.Equal(testInstance, "20240305_090703", runToken.String())
}

func TestNewTokenIsStableWithinOneSecond(testInstance *testing.T) {
	firstInstant := time.Date(2024, time.March, 5, 9, 7, 3, 100, time.Local)
	secondInstant := time.Date(2024, time.March, 5, 9, 7, 3, 999999999, time.Local)
	require.Equal(testInstance, checkpoint.NewToken(firstInstant), checkpoint.NewToken(secondInstant))
}
