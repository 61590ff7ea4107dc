package errors

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outOfRange(index []int, feature []uint16) uint16 {
	var code uint16
	for _, i := range index {
		code = feature[i]
	}
	return code
}

func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "OnSplit")
		panic("bin codes shorter than index")
	}

	err := testFunc()
	require.Error(t, err)

	var panicErr *PanicError
	require.True(t, As(err, &panicErr))
	assert.Equal(t, "OnSplit", panicErr.Operation)
	assert.Equal(t, "bin codes shorter than index", panicErr.PanicValue)
	assert.NotEmpty(t, panicErr.StackTrace)
	assert.Equal(t, "panic in OnSplit: bin codes shorter than index", panicErr.Error())
}

func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "OnSplit")
		return nil
	}

	assert.NoError(t, testFunc())
}

func TestRecover_WithExistingError(t *testing.T) {
	originalErr := New("original error")

	testFunc := func() (err error) {
		defer Recover(&err, "BinColumn")
		err = originalErr
		panic("panic after error")
	}

	err := testFunc()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic in BinColumn")
	assert.Contains(t, err.Error(), "original error")
	assert.True(t, Is(err, originalErr))
}

func TestSafeExecute(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		assert.NoError(t, SafeExecute("bin column 0", func() error { return nil }))
	})

	t.Run("function error", func(t *testing.T) {
		originalErr := fmt.Errorf("function error")
		err := SafeExecute("bin column 0", func() error { return originalErr })
		assert.Equal(t, originalErr, err)
	})

	t.Run("runtime panic", func(t *testing.T) {
		err := SafeExecute("bin column 1", func() error {
			outOfRange([]int{0, 5}, []uint16{1, 2})
			return nil
		})
		require.Error(t, err)

		var panicErr *PanicError
		require.True(t, As(err, &panicErr))
		assert.Equal(t, "bin column 1", panicErr.Operation)
		assert.Contains(t, panicErr.String(), "Stack trace:")

		var rtErr runtime.Error
		assert.True(t, As(err, &rtErr))
	})

	t.Run("non-error panic value", func(t *testing.T) {
		err := SafeExecute("bin column 2", func() error { panic(42) })
		var panicErr *PanicError
		require.True(t, As(err, &panicErr))
		assert.Nil(t, panicErr.Unwrap())
	})
}

func BenchmarkSafeExecute_NoPanic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = SafeExecute("BenchmarkOp", func() error {
			return nil
		})
	}
}
