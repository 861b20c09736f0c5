package check_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funny-falcon/vecalloc/internal/check"
)

var errSample = errors.New("sample")

func TestThat(t *testing.T) {
	require.NotPanics(t, func() { check.That(true, errSample, "never") })

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		require.ErrorIs(t, err, errSample)
		require.Contains(t, err.Error(), "value 7")
	}()
	check.That(false, errSample, "value %d", 7)
}
