package mesh

// Topology is the grid query interface consumed by the flow-direction and
// overland-flow solvers. Implementations own the node/link adjacency and the
// interior/boundary/closed classification; topology is immutable while a
// solver call is in flight. Node and link ids are 0-indexed and contiguous.
type Topology interface {
	NumNodes() int
	NumLinks() int

	// NeighborLinks returns the ids of every link incident to a node.
	NeighborLinks(node int) []int
	// LinkEndpoints returns the from- and to-node of a link; positive link
	// values (discharge, gradient) are directed from "from" toward "to".
	LinkEndpoints(link int) (from, to int)
	// ActiveLinks returns the links eligible to carry flow: neither endpoint
	// closed, at least one endpoint interior.
	ActiveLinks() []int

	IsInterior(node int) bool
	IsBoundary(node int) bool

	// GradientAtActiveLinks returns (f[to]-f[from])/dx at every active link;
	// inactive links are zero. The returned slice is link-indexed.
	GradientAtActiveLinks(nodeField []float64) []float64
	// DivergenceAtNodes returns the net outflux per unit cell area implied by
	// a link-indexed flux field, evaluated over active links only.
	DivergenceAtNodes(linkField []float64) []float64
	// MaxOfLinkEndpoints returns max(f[from],f[to]) at every active link.
	MaxOfLinkEndpoints(nodeField []float64) []float64

	// CharacteristicSpacing is the length scale dx used in stability bounds.
	CharacteristicSpacing() float64
}

// Structurer is the capability check for dense raster meshes: a Topology that
// can hand out its cached 4/8-neighbour structure. Resolved once at
// construction, never discovered by call-time failure.
type Structurer interface {
	Structured() (*Neighbors, bool)
}

// Neighbors caches the dense neighbour structure of a raster mesh for the
// vectorized flow-direction path. Built when the mesh is built; a mesh whose
// topology changes must be reconstructed, which rebuilds the cache.
type Neighbors struct {
	Cells []int    // interior node ids, cell order
	Nodes [][8]int // neighbour node ids E,N,W,S,NE,NW,SW,SE (-1 where absent)
	Links [][4]int // link ids toward E,N,W,S neighbours (-1 where absent)
	DX    float64
}
