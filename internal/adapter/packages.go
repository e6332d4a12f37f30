package adapter

import (
	"context"

	"github.com/Yates-Labs/automigrate/internal/manifest"
)

// PackageRetriever reads package.json from a Source.
// It implements advisor.PackageRetriever.
type PackageRetriever struct {
	source Source
}

// NewPackageRetriever creates a retriever over source
func NewPackageRetriever(source Source) *PackageRetriever {
	return &PackageRetriever{source: source}
}

// RetrievePackageJSON reads and parses the project's package.json
func (r *PackageRetriever) RetrievePackageJSON(ctx context.Context) (*manifest.PackageJSON, error) {
	return manifest.Load(ctx, r.source)
}
