package pipeline_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waygraph/waygraph/pipeline"
)

func TestWriterPumpPreservesOrder(t *testing.T) {
	var mu sync.Mutex
	var got []int

	p := pipeline.NewWriterPump[int](4, func(v int) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, v)
		return nil
	})

	for i := 0; i < 100; i++ {
		p.Send(i)
	}
	require.NoError(t, p.Close())

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestWriterPumpReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")

	p := pipeline.NewWriterPump[int](1, func(v int) error {
		if v == 3 {
			return boom
		}
		return nil
	})

	for i := 0; i < 10; i++ {
		p.Send(i)
	}
	err := p.Close()
	assert.ErrorIs(t, err, boom)
}
