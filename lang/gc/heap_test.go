package gc_test

import (
	"testing"

	"github.com/arzelion/wisp/lang/gc"
	"github.com/arzelion/wisp/lang/intern"
	"github.com/arzelion/wisp/lang/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRoots lets tests control exactly what MarkRoots reports, without
// standing up a VM.
type fakeRoots struct {
	roots []value.Value
}

func (r *fakeRoots) MarkRoots(mark func(value.Value)) {
	for _, v := range r.roots {
		mark(v)
	}
}

func internString(t *testing.T, h *gc.Heap, pool *intern.Pool, s string) *value.ObjString {
	t.Helper()
	return pool.Intern(s, func(obj *value.ObjString) {
		h.Track(obj, len(s)+16)
	})
}

func TestCollectSweepsUnreachableString(t *testing.T) {
	h := gc.NewHeap()
	pool := intern.New()

	kept := internString(t, h, pool, "kept")
	_ = internString(t, h, pool, "garbage")

	roots := &fakeRoots{roots: []value.Value{value.FromObj(kept)}}
	h.Collect(roots, pool)

	assert.Equal(t, 1, pool.Len())
	live := 0
	h.Live(func(o value.Obj) { live++ })
	assert.Equal(t, 1, live)
}

func TestCollectRetainsArrayContents(t *testing.T) {
	h := gc.NewHeap()
	pool := intern.New()

	s := internString(t, h, pool, "item")
	arr := value.NewArray([]value.Value{value.FromObj(s)})
	h.Track(arr, 32)

	roots := &fakeRoots{roots: []value.Value{value.FromObj(arr)}}
	h.Collect(roots, pool)

	require.Equal(t, 1, pool.Len())
	liveKinds := map[value.ObjType]int{}
	h.Live(func(o value.Obj) { liveKinds[o.Kind()]++ })
	assert.Equal(t, 1, liveKinds[value.ObjTypeArray])
	assert.Equal(t, 1, liveKinds[value.ObjTypeString])
}

func TestShouldCollectHonorsStressMode(t *testing.T) {
	h := gc.NewHeap()
	assert.False(t, h.ShouldCollect())
	h.StressMode = true
	assert.True(t, h.ShouldCollect())
}

func TestShouldCollectHonorsThreshold(t *testing.T) {
	h := gc.NewHeap()
	obj := value.NewString("x")
	h.Track(obj, gc.InitialThreshold+1)
	assert.True(t, h.ShouldCollect())
}

func TestCollectGrowsNextGC(t *testing.T) {
	h := gc.NewHeap()
	pool := intern.New()
	s := internString(t, h, pool, "alive")
	roots := &fakeRoots{roots: []value.Value{value.FromObj(s)}}

	h.Collect(roots, pool)
	assert.GreaterOrEqual(t, h.NextGC(), gc.InitialThreshold)
	assert.Equal(t, 1, h.Collections)
}
