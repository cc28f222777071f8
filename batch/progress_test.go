package batch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker(t *testing.T) {
	t.Run("reports at intervals", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewProgressTracker(&buf, 100, 10)
		p.Start()

		p.Update(5)
		assert.Empty(t, buf.String())

		p.Update(10)
		assert.Contains(t, buf.String(), "10/100")
		assert.Contains(t, buf.String(), "10.0%")
	})

	t.Run("increment accumulates", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewProgressTracker(&buf, 20, 10)
		p.Start()

		p.Increment(4)
		p.Increment(4)
		assert.Empty(t, buf.String())
		p.Increment(4)
		assert.Contains(t, buf.String(), "12/20")
	})

	t.Run("finish prints final state", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewProgressTracker(&buf, 50, 100)
		p.Start()
		p.Update(30)
		p.Finish()

		assert.Contains(t, buf.String(), "50/50")
		assert.Contains(t, buf.String(), "100.0%")
		assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	})

	t.Run("caps at total", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewProgressTracker(&buf, 10, 1)
		p.Start()
		p.Update(25)
		assert.Contains(t, buf.String(), "10/10")
	})

	t.Run("ignores updates before start", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewProgressTracker(&buf, 10, 1)
		p.Update(5)
		p.Increment(5)
		p.Finish()
		assert.Empty(t, buf.String())
		assert.Zero(t, p.Elapsed())
	})
}
