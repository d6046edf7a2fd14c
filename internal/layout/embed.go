// Package layout describes grids as YAML documents: embedded sample maps,
// loading from and saving to disk, and building the grid they describe.
package layout

import "embed"

// layoutFS embeds all YAML layouts from this directory at build time.
//
//go:embed *.yaml
var layoutFS embed.FS
