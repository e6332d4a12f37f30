package manifest

// Tier identifies one of the dependency declaration groups of a manifest
type Tier string

const (
	TierProduction  Tier = "dependencies"
	TierDevelopment Tier = "devDependencies"
	TierPeer        Tier = "peerDependencies"
)

// Tiers lists every dependency tier in manifest order
var Tiers = []Tier{TierProduction, TierDevelopment, TierPeer}

// PackageJSON is the subset of a package manifest migration checks read.
// A nil map means the tier is absent from the manifest.
type PackageJSON struct {
	Name             string            `json:"name,omitempty"`
	Version          string            `json:"version,omitempty"`
	Dependencies     map[string]string `json:"dependencies,omitempty"`
	DevDependencies  map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies map[string]string `json:"peerDependencies,omitempty"`
}

// Tier returns the declarations of a single tier
func (p *PackageJSON) Tier(t Tier) map[string]string {
	if p == nil {
		return nil
	}
	switch t {
	case TierProduction:
		return p.Dependencies
	case TierDevelopment:
		return p.DevDependencies
	case TierPeer:
		return p.PeerDependencies
	}
	return nil
}
