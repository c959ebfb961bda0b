package raycast

// Fan holds one ray per angle per layer, laid out layer-major.
type Fan struct {
	layers   int
	rayCount int
	rays     []Ray
}

// NewFan allocates a fan of layers x rayCount no-hit rays.
func NewFan(layers, rayCount int) *Fan {
	f := &Fan{
		layers:   layers,
		rayCount: rayCount,
		rays:     make([]Ray, layers*rayCount),
	}
	for i := range f.rays {
		f.rays[i] = NoHit(0)
	}
	return f
}

// At returns the ray with index i on layer. Index 0 is the smallest angle,
// player.angle - rayCount/2.
func (f *Fan) At(layer, i int) Ray {
	return f.rays[layer*f.rayCount+i]
}

// Layer returns the rays of one layer. The slice aliases the fan.
func (f *Fan) Layer(layer int) []Ray {
	start := layer * f.rayCount
	return f.rays[start : start+f.rayCount : start+f.rayCount]
}

// Set stores r at index i on layer.
func (f *Fan) Set(layer, i int, r Ray) {
	f.rays[layer*f.rayCount+i] = r
}

// Layers is the number of map layers cast.
func (f *Fan) Layers() int { return f.layers }

// Len is the number of rays per layer.
func (f *Fan) Len() int { return f.rayCount }

// Hits counts rays on layer that found a tile.
func (f *Fan) Hits(layer int) int {
	n := 0
	for _, r := range f.Layer(layer) {
		if r.Hit() {
			n++
		}
	}
	return n
}
