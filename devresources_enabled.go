//go:build devresources

package hearth

import (
	"os"

	"github.com/hearthlib/hearth/vfs"
)

// devResourcesDir is mounted at the top of the overlay in development
// builds, so editing a file under resources/ shows up on the next run
// without repacking archives.
const devResourcesDir = "resources"

func mountDevResources(fsys *vfs.FS) {
	info, err := os.Stat(devResourcesDir)
	if err != nil || !info.IsDir() {
		return
	}
	if err := fsys.Mount(vfs.MountSpec{Kind: vfs.KindDir, Location: devResourcesDir}); err != nil {
		Logger().Warn("dev resources mount failed", "error", err)
		return
	}
	Logger().Info("dev resources mounted", "dir", devResourcesDir)
}
