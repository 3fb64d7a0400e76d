// Package vfs overlays game resources from heterogeneous sources behind
// one path namespace. Directories, zip archives and caller-supplied
// filesystems are attached as ordered mounts; a path is resolved by
// scanning the mounts newest-first, so a source mounted later shadows
// files of the same name from earlier mounts. At most one mount, the
// write root, accepts writes.
//
// All paths are resource paths: slash-separated and relative to the
// namespace root. See Clean for the exact rules.
package vfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/spf13/afero"
)

// File is an open resource. Read-only mounts return files whose write
// methods fail with a permission error.
type File = afero.File

// FS is an ordered overlay of resource mounts. The zero value is not
// usable; call New.
//
// FS methods are not synchronized. The engine accesses it from the main
// loop only; concurrent readers are safe once mounting is done, but
// mounting and writing must not race with anything.
type FS struct {
	mounts   []*mount
	write    afero.Fs
	writeDir string
}

// New returns an empty overlay with no mounts and no write root.
func New() *FS { return &FS{} }

// Mount attaches the source described by spec at the end of the search
// order, giving it precedence over everything mounted before it. The
// location is validated now: a directory must exist, an archive's table
// of contents must parse. Failures are reported as *MountError.
func (v *FS) Mount(spec MountSpec) error {
	m, err := openMount(spec)
	if err != nil {
		return err
	}
	v.mounts = append(v.mounts, m)
	Logger().Info("vfs: mount attached", "kind", spec.Kind, "location", spec.Location)
	return nil
}

// MountFs attaches an arbitrary afero filesystem under a diagnostic
// label. The filesystem is used as-is; wrap it in afero.NewReadOnlyFs
// if it must not be written through a leaked File.
func (v *FS) MountFs(label string, afs afero.Fs) {
	v.mounts = append(v.mounts, &mount{
		spec: MountSpec{Kind: KindFs, Location: label},
		fs:   afs,
	})
	Logger().Info("vfs: mount attached", "kind", KindFs, "location", label)
}

// Unmount detaches the most recently mounted source whose location
// matches. Archive handles are closed. Returns ErrNotMounted when
// nothing matches.
func (v *FS) Unmount(location string) error {
	for i := len(v.mounts) - 1; i >= 0; i-- {
		m := v.mounts[i]
		if m.spec.Location != location {
			continue
		}
		err := m.close()
		v.mounts = append(v.mounts[:i], v.mounts[i+1:]...)
		if m.writable {
			v.write = nil
			v.writeDir = ""
		}
		Logger().Debug("vfs: mount detached", "location", location)
		return err
	}
	return fmt.Errorf("%w: %s", ErrNotMounted, location)
}

// SetWriteRoot designates dir as the single writable mount, creating it
// if needed. The directory also joins the search order (at its current
// end), so files written through the overlay are readable back through
// it. A previous write root is replaced and drops out of the search
// order.
func (v *FS) SetWriteRoot(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &MountError{Kind: KindDir, Location: dir, Err: err}
	}
	for i := len(v.mounts) - 1; i >= 0; i-- {
		if v.mounts[i].writable {
			v.mounts = append(v.mounts[:i], v.mounts[i+1:]...)
			break
		}
	}
	base := afero.NewBasePathFs(afero.NewOsFs(), dir)
	v.mounts = append(v.mounts, &mount{
		spec:     MountSpec{Kind: KindDir, Location: dir},
		fs:       base,
		writable: true,
	})
	v.write = base
	v.writeDir = dir
	Logger().Info("vfs: write root set", "dir", dir)
	return nil
}

// WriteRoot reports the directory configured by SetWriteRoot, or "".
func (v *FS) WriteRoot() string { return v.writeDir }

// Mounts returns the mount specs in search order, oldest first. The
// slice is a copy.
func (v *FS) Mounts() []MountSpec {
	specs := make([]MountSpec, len(v.mounts))
	for i, m := range v.mounts {
		specs[i] = m.spec
	}
	return specs
}

// Open opens the named resource for reading, searching mounts
// newest-first and returning the first hit. A miss on every mount is
// ErrNotFound; a malformed name is ErrInvalidPath before any mount is
// touched.
func (v *FS) Open(name string) (File, error) {
	p, err := cleanFile(name)
	if err != nil {
		return nil, err
	}
	for i := len(v.mounts) - 1; i >= 0; i-- {
		f, err := v.mounts[i].fs.Open("/" + p)
		if err == nil {
			return f, nil
		}
		if isNotExist(err) {
			continue
		}
		return nil, fmt.Errorf("vfs: open %s: %w", p, err)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
}

// Create creates or truncates the named file under the write root,
// making parent directories as needed. Without a write root it fails
// with ErrNoWriteRoot.
func (v *FS) Create(name string) (File, error) {
	p, err := cleanFile(name)
	if err != nil {
		return nil, err
	}
	if v.write == nil {
		return nil, fmt.Errorf("%w: create %s", ErrNoWriteRoot, p)
	}
	if dir := path.Dir(p); dir != "." {
		if err := v.write.MkdirAll("/"+dir, 0o755); err != nil {
			return nil, fmt.Errorf("vfs: create %s: %w", p, err)
		}
	}
	f, err := v.write.Create("/" + p)
	if err != nil {
		return nil, fmt.Errorf("vfs: create %s: %w", p, err)
	}
	return f, nil
}

// ReadFile reads the whole named resource.
func (v *FS) ReadFile(name string) ([]byte, error) {
	f, err := v.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("vfs: read %s: %w", name, err)
	}
	return data, nil
}

// WriteFile writes data to the named file under the write root.
func (v *FS) WriteFile(name string, data []byte) error {
	f, err := v.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("vfs: write %s: %w", name, err)
	}
	return f.Close()
}

// Remove deletes the named file from the write root. Read-only mounts
// are never touched, so a shadowed copy on another mount may become
// visible again.
func (v *FS) Remove(name string) error {
	p, err := cleanFile(name)
	if err != nil {
		return err
	}
	if v.write == nil {
		return fmt.Errorf("%w: remove %s", ErrNoWriteRoot, p)
	}
	if err := v.write.Remove("/" + p); err != nil {
		if isNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return fmt.Errorf("vfs: remove %s: %w", p, err)
	}
	return nil
}

// Exists reports whether the name resolves on any mount. Malformed
// names report false.
func (v *FS) Exists(name string) bool {
	p, err := Clean(name)
	if err != nil {
		return false
	}
	for i := len(v.mounts) - 1; i >= 0; i-- {
		if ok, _ := afero.Exists(v.mounts[i].fs, "/"+p); ok {
			return true
		}
	}
	return false
}

// List returns the merged directory listing for dir across all mounts,
// de-duplicated by name and sorted. The directory must exist on at
// least one mount.
func (v *FS) List(dir string) ([]string, error) {
	p, err := Clean(dir)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	found := false
	for _, m := range v.mounts {
		infos, err := afero.ReadDir(m.fs, "/"+p)
		if err != nil {
			if isNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("vfs: list %s: %w", p, err)
		}
		found = true
		for _, info := range infos {
			seen[info.Name()] = struct{}{}
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close detaches every mount and releases archive handles. The FS is
// empty afterwards and can be remounted.
func (v *FS) Close() error {
	var errs []error
	for i := len(v.mounts) - 1; i >= 0; i-- {
		if err := v.mounts[i].close(); err != nil {
			errs = append(errs, err)
		}
	}
	v.mounts = nil
	v.write = nil
	v.writeDir = ""
	return errors.Join(errs...)
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err)
}
