package batch

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func healthy() *ResourceMonitor {
	m := NewResourceMonitor()
	m.memFn = func() (uint64, error) { return 8 * 1024 * 1024 * 1024, nil }
	m.cpuFn = func() (float64, error) { return 20.0, nil }
	return m
}

func TestRecommend(t *testing.T) {
	headroom := runtime.NumCPU() / 2
	if headroom < 1 {
		headroom = 1
	}

	t.Run("disabled monitor passes the maximum through", func(t *testing.T) {
		m := &ResourceMonitor{}
		assert.Equal(t, 16, m.Recommend(16))

		var nilMonitor *ResourceMonitor
		assert.Equal(t, 16, nilMonitor.Recommend(16))
	})

	t.Run("low memory forces one worker", func(t *testing.T) {
		m := healthy()
		m.memFn = func() (uint64, error) { return 100 * 1024 * 1024, nil }
		assert.Equal(t, 1, m.Recommend(16))
	})

	t.Run("high cpu forces one worker", func(t *testing.T) {
		m := healthy()
		m.cpuFn = func() (float64, error) { return 97.5, nil }
		assert.Equal(t, 1, m.Recommend(16))
	})

	t.Run("healthy system caps at half the cpus", func(t *testing.T) {
		m := healthy()
		assert.Equal(t, headroom, m.Recommend(1024))
	})

	t.Run("maximum below the headroom cap is kept", func(t *testing.T) {
		m := healthy()
		assert.Equal(t, 1, m.Recommend(1))
	})

	t.Run("sampling errors keep the configured workers", func(t *testing.T) {
		m := healthy()
		m.memFn = func() (uint64, error) { return 0, errors.New("no procfs") }
		m.cpuFn = func() (float64, error) { return 0, errors.New("no procfs") }
		assert.Equal(t, min(4, headroom), m.Recommend(4))
	})

	t.Run("non-positive maximum is lifted to one", func(t *testing.T) {
		m := &ResourceMonitor{}
		assert.Equal(t, 1, m.Recommend(0))
	})
}
