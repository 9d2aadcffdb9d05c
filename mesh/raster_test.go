package mesh_test

import (
	"testing"

	"github.com/maseology/lem/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterCounts(t *testing.T) {
	m := mesh.NewRaster(4, 5, 10.)
	assert.Equal(t, 20, m.NumNodes())
	assert.Equal(t, 31, m.NumLinks()) // 15 south-north + 16 west-east
	assert.Len(t, m.ActiveLinks(), 17)
	assert.Equal(t, 10., m.CharacteristicSpacing())

	nint := 0
	for n := 0; n < m.NumNodes(); n++ {
		if m.IsInterior(n) {
			nint++
			assert.False(t, m.IsBoundary(n))
		} else {
			assert.True(t, m.IsBoundary(n))
		}
	}
	assert.Equal(t, 6, nint)
	assert.Equal(t, 7, m.NodeID(1, 2))
}

func TestRasterLinkOrdering(t *testing.T) {
	m := mesh.NewRaster(4, 5, 1.)

	// south-north block first, directed toward the higher node id
	f, to := m.LinkEndpoints(6) // row 1, col 1
	assert.Equal(t, 6, f)
	assert.Equal(t, 11, to)
	f, to = m.LinkEndpoints(20) // first west-east block entry for row 1 is 19
	assert.Equal(t, 6, f)
	assert.Equal(t, 7, to)

	for _, l := range m.ActiveLinks() {
		f, to := m.LinkEndpoints(l)
		assert.Less(t, f, to, "link %d", l)
		assert.True(t, m.IsInterior(f) || m.IsInterior(to), "link %d", l)
	}
}

func TestRasterGradient(t *testing.T) {
	m := mesh.NewRaster(4, 5, 2.)

	flat := make([]float64, m.NumNodes())
	for i := range flat {
		flat[i] = 3.
	}
	for l, g := range m.GradientAtActiveLinks(flat) {
		assert.Zero(t, g, "link %d", l)
	}

	// field rising eastward by one per column
	f := make([]float64, m.NumNodes())
	for n := range f {
		f[n] = float64(n % 5)
	}
	grad := m.GradientAtActiveLinks(f)
	for _, l := range m.ActiveLinks() {
		fn, tn := m.LinkEndpoints(l)
		if tn-fn == 1 { // west-east
			assert.InDelta(t, 0.5, grad[l], 1e-12, "link %d", l)
		} else {
			assert.Zero(t, grad[l], "link %d", l)
		}
	}
}

func TestRasterDivergenceConserves(t *testing.T) {
	m := mesh.NewRaster(4, 5, 1.)
	q := make([]float64, m.NumLinks())
	for i, l := range m.ActiveLinks() {
		q[l] = float64(i%7) - 3.
	}
	sum := 0.
	for _, d := range m.DivergenceAtNodes(q) {
		sum += d
	}
	assert.InDelta(t, 0., sum, 1e-12)
}

func TestRasterMaxOfLinkEndpoints(t *testing.T) {
	m := mesh.NewRaster(3, 3, 1.)
	f := []float64{0., 1., 2., 3., 4., 5., 6., 7., 8.}
	mx := m.MaxOfLinkEndpoints(f)
	for _, l := range m.ActiveLinks() {
		fn, tn := m.LinkEndpoints(l)
		w := f[fn]
		if f[tn] > w {
			w = f[tn]
		}
		assert.Equal(t, w, mx[l], "link %d", l)
	}
}

func TestRasterStructured(t *testing.T) {
	m := mesh.NewRaster(4, 5, 1.)
	nb, ok := m.Structured()
	require.True(t, ok)
	require.Len(t, nb.Cells, 6)
	assert.Equal(t, 1., nb.DX)

	i := 0 // cell at node 6 (row 1, col 1)
	require.Equal(t, 6, nb.Cells[i])
	assert.Equal(t, [8]int{7, 11, 5, 1, 12, 10, 0, 2}, nb.Nodes[i])
	assert.Equal(t, [4]int{20, 6, 19, 1}, nb.Links[i])

	// the dense links agree with the mesh's endpoints
	for j, c := range nb.Cells {
		for _, l := range nb.Links[j] {
			f, tn := m.LinkEndpoints(l)
			assert.True(t, f == c || tn == c, "cell %d link %d", c, l)
		}
	}
}

func TestRasterClosedNode(t *testing.T) {
	m := mesh.NewRaster(4, 5, 1., 7)
	assert.False(t, m.IsInterior(7))
	assert.False(t, m.IsBoundary(7))
	assert.Len(t, m.ActiveLinks(), 13)
	for _, l := range m.ActiveLinks() {
		f, tn := m.LinkEndpoints(l)
		assert.NotEqual(t, 7, f)
		assert.NotEqual(t, 7, tn)
	}

	nb, ok := m.Structured()
	require.True(t, ok)
	require.Len(t, nb.Cells, 5)
	for j, c := range nb.Cells {
		assert.NotEqual(t, 7, c)
		if c == 6 {
			assert.Equal(t, -1, nb.Nodes[j][0]) // east neighbour closed
		}
		if c == 12 {
			assert.Equal(t, -1, nb.Nodes[j][3]) // south neighbour closed
		}
	}
}
