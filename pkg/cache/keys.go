package cache

// Keyer builds cache keys. Implementations must return the same key for
// equal inputs and different keys for inputs that produce different values.
type Keyer interface {
	// IdentifyKey addresses an identification result for a model.
	IdentifyKey(modelHash string, opts IdentifyKeyOpts) string

	// DiagramKey addresses a rendered causal diagram for a model.
	DiagramKey(modelHash string, opts DiagramKeyOpts) string
}

// IdentifyKeyOpts are the query and model options that change an
// identification result.
type IdentifyKeyOpts struct {
	X           int    `json:"x"`
	Targets     []int  `json:"targets,omitempty"`
	Marginalize bool   `json:"marginalize,omitempty"`
	NonAncestor string `json:"non_ancestor"`
	Hedge       string `json:"hedge"`
}

// DiagramKeyOpts are the options that change a rendered diagram.
type DiagramKeyOpts struct {
	Format    string  `json:"format"`
	Highlight int     `json:"highlight"`
	Scale     float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes the options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// IdentifyKey returns "identify:<hash>".
func (DefaultKeyer) IdentifyKey(modelHash string, opts IdentifyKeyOpts) string {
	return hashKey("identify", modelHash, opts)
}

// DiagramKey returns "diagram:<hash>".
func (DefaultKeyer) DiagramKey(modelHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", modelHash, opts)
}
