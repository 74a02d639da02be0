package status

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRegistersOnce(t *testing.T) {
	m := NewMetricMap[atomic.Uint64]()

	a := m.Get("frames")
	b := m.Get("frames")
	require.Same(t, a, b)
	assert.Equal(t, 1, m.Len())

	a.Add(3)
	assert.Equal(t, uint64(3), m.Get("frames").Load())
}

func TestGetConcurrent(t *testing.T) {
	m := NewMetricMap[atomic.Uint64]()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Get("shared").Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, m.Len())
	assert.Equal(t, uint64(1600), m.Get("shared").Load())
}

func TestRangeSorted(t *testing.T) {
	m := NewMetricMap[Gauge]()
	m.Get("b")
	m.Get("c")
	m.Get("a")

	var keys []string
	m.Range(func(k string, _ *Gauge) { keys = append(keys, k) })
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestGauge(t *testing.T) {
	var g Gauge
	assert.Zero(t, g.Get())
	g.Set(-0.125)
	assert.Equal(t, -0.125, g.Get())
}

func TestLabel(t *testing.T) {
	var l Label
	assert.Empty(t, l.Get())

	l.Set("nocked")
	assert.Equal(t, "nocked", l.Get())

	l.Set(strings.Repeat("x", MaxLabelLen+5))
	assert.Len(t, l.Get(), MaxLabelLen)
}

func TestValues(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Values())

	r.Counters.Get(RigLaunches).Store(2)
	r.Gauges.Get(BowTension).Set(0.3)
	r.Labels.Get(RigState).Set("drawing")

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, map[string]any{
		RigLaunches: uint64(2),
		BowTension:  0.3,
		RigState:    "drawing",
	}, r.Values())
}
