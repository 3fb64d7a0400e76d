//go:build !devresources

package hearth

import "github.com/hearthlib/hearth/vfs"

// Release builds resolve resources through the configured mounts only.
// Build with -tags devresources to overlay a local resources/ directory
// during development.
func mountDevResources(*vfs.FS) {}
