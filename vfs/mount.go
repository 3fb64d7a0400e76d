package vfs

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/afero/zipfs"
)

// Kind identifies the physical backing of a mount.
type Kind int

const (
	// KindDir mounts a directory on the host filesystem, read-only.
	KindDir Kind = iota
	// KindZip mounts a zip archive. The table of contents is parsed once
	// at mount time; entry bytes are read on demand.
	KindZip
	// KindFs mounts a caller-supplied afero.Fs. Used by MountFs.
	KindFs
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindZip:
		return "zip"
	case KindFs:
		return "fs"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MountSpec declares one resource source. Specs are what configuration
// files and callers hand to Mount; the FS turns them into live mounts.
type MountSpec struct {
	Kind     Kind
	Location string
}

// mount is one attached source in the search order.
type mount struct {
	spec     MountSpec
	fs       afero.Fs
	closer   io.Closer // zip file handle; nil for other kinds
	writable bool
}

// openMount validates the location and builds the afero view for it.
func openMount(spec MountSpec) (*mount, error) {
	switch spec.Kind {
	case KindDir:
		info, err := os.Stat(spec.Location)
		if err != nil {
			return nil, &MountError{Kind: spec.Kind, Location: spec.Location, Err: err}
		}
		if !info.IsDir() {
			return nil, &MountError{
				Kind:     spec.Kind,
				Location: spec.Location,
				Err:      fmt.Errorf("not a directory"),
			}
		}
		base := afero.NewBasePathFs(afero.NewOsFs(), spec.Location)
		return &mount{spec: spec, fs: afero.NewReadOnlyFs(base)}, nil

	case KindZip:
		rc, err := zip.OpenReader(spec.Location)
		if err != nil {
			if _, statErr := os.Stat(spec.Location); statErr != nil {
				return nil, &MountError{Kind: spec.Kind, Location: spec.Location, Err: statErr}
			}
			// The file exists but the central directory does not parse.
			return nil, &MountError{
				Kind:     spec.Kind,
				Location: spec.Location,
				Err:      fmt.Errorf("%w: %v", ErrCorruptArchive, err),
			}
		}
		return &mount{spec: spec, fs: zipfs.New(&rc.Reader), closer: rc}, nil

	default:
		return nil, &MountError{
			Kind:     spec.Kind,
			Location: spec.Location,
			Err:      fmt.Errorf("unknown mount kind"),
		}
	}
}

func (m *mount) close() error {
	if m.closer == nil {
		return nil
	}
	err := m.closer.Close()
	m.closer = nil
	return err
}
