package registry

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConstructsOnce(t *testing.T) {
	r := New()

	var built int64
	build := func() interface{} {
		atomic.AddInt64(&built, 1)
		return "model"
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "model", r.Get("detector", build))
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&built),
		"concurrent first access must construct exactly once")
}

func TestGetSeparateKeys(t *testing.T) {
	r := New()

	a := r.Get("a", func() interface{} { return 1 })
	b := r.Get("b", func() interface{} { return 2 })

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)

	// Subsequent access returns the cached value, not a rebuild
	assert.Equal(t, 1, r.Get("a", func() interface{} { return 99 }))
}

func TestBuilt(t *testing.T) {
	r := New()
	assert.Empty(t, r.Built())

	r.Get("risk_calculator", func() interface{} { return struct{}{} })
	r.Get("pattern_detector", func() interface{} { return struct{}{} })

	assert.Equal(t, []string{"pattern_detector", "risk_calculator"}, r.Built())
}
