// Package archive bundles the split directories into a single xz-compressed
// tarball.
//
// Each source directory is stored under its own top-level entry, so packing
// images_data32/{train,val,test} yields an archive with train/, val/ and
// test/ at its root and the label directories beneath them. Entries are
// written in lexical order, directories before their contents.
package archive

import (
	"archive/tar"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/ulikunitz/xz"

	serrors "github.com/matzehuels/strokeset/pkg/errors"
)

// DefaultName is the file name of the dataset archive.
const DefaultName = "images.tar.xz"

// Stats reports the contents of a written archive.
type Stats struct {
	Dirs  int   // directory entries
	Files int   // regular file entries
	Bytes int64 // uncompressed file payload
	Size  int64 // size of the archive on disk
}

// Pack writes an xz-compressed tar archive to dst containing root/<name> for
// each name, stored under <name>/.
//
// The archive is written to a temporary file next to dst and renamed into
// place once complete, so dst is either the previous archive or a whole new
// one. Symlinks and other non-regular files are left out.
func Pack(dst, root string, names ...string) (Stats, error) {
	var st Stats

	for _, name := range names {
		dir := filepath.Join(root, name)
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			return st, serrors.Wrap(serrors.ErrCodeFileNotFound, err, "pack %s", dir)
		} else if err != nil {
			return st, serrors.Wrap(serrors.ErrCodeIO, err, "stat %s", dir)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".strokeset-*.tar.xz")
	if err != nil {
		return st, serrors.Wrap(serrors.ErrCodeIO, err, "create archive")
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := write(tmp, root, names, &st); err != nil {
		tmp.Close()
		return st, err
	}
	info, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return st, serrors.Wrap(serrors.ErrCodeIO, err, "stat archive")
	}
	st.Size = info.Size()
	if err := tmp.Close(); err != nil {
		return st, serrors.Wrap(serrors.ErrCodeIO, err, "close archive")
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return st, serrors.Wrap(serrors.ErrCodeIO, err, "rename archive to %s", dst)
	}
	return st, nil
}

func write(w io.Writer, root string, names []string, st *Stats) error {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return serrors.Wrap(serrors.ErrCodeInternal, err, "init xz")
	}
	tw := tar.NewWriter(xw)

	for _, name := range names {
		if err := addTree(tw, filepath.Join(root, name), name, st); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return serrors.Wrap(serrors.ErrCodeIO, err, "finish tar")
	}
	if err := xw.Close(); err != nil {
		return serrors.Wrap(serrors.ErrCodeIO, err, "finish xz")
	}
	return nil
}

// addTree adds dir recursively, naming entries relative to arcname.
func addTree(tw *tar.Writer, dir, arcname string, st *Stats) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return serrors.Wrap(serrors.ErrCodeIO, err, "walk %s", p)
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return serrors.Wrap(serrors.ErrCodeInternal, err, "relative path of %s", p)
		}
		name := path.Join(arcname, filepath.ToSlash(rel))

		if !d.IsDir() && !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return serrors.Wrap(serrors.ErrCodeIO, err, "stat %s", p)
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return serrors.Wrap(serrors.ErrCodeIO, err, "header for %s", p)
		}

		if d.IsDir() {
			hdr.Name = name + "/"
			if err := tw.WriteHeader(hdr); err != nil {
				return serrors.Wrap(serrors.ErrCodeIO, err, "write %s", hdr.Name)
			}
			st.Dirs++
			return nil
		}

		hdr.Name = name
		if err := tw.WriteHeader(hdr); err != nil {
			return serrors.Wrap(serrors.ErrCodeIO, err, "write %s", name)
		}
		n, err := copyFile(tw, p)
		if err != nil {
			return err
		}
		st.Files++
		st.Bytes += n
		return nil
	})
}

func copyFile(w io.Writer, p string) (int64, error) {
	f, err := os.Open(p)
	if err != nil {
		return 0, serrors.Wrap(serrors.ErrCodeIO, err, "open %s", p)
	}
	defer f.Close()
	n, err := io.Copy(w, f)
	if err != nil {
		return n, serrors.Wrap(serrors.ErrCodeIO, err, "archive %s", p)
	}
	return n, nil
}

// Entry is one member of an archive.
type Entry struct {
	Name string
	Dir  bool
	Size int64
}

// List returns the entries of the archive at p in stored order.
func List(p string) ([]Entry, error) {
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, serrors.Wrap(serrors.ErrCodeFileNotFound, err, "open %s", p)
	}
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeIO, err, "open %s", p)
	}
	defer f.Close()
	return ReadEntries(f)
}

// ReadEntries reads the entries of an xz-compressed tar stream.
func ReadEntries(r io.Reader) ([]Entry, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "read xz header")
	}
	tr := tar.NewReader(xr)

	var out []Entry
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "read tar")
		}
		out = append(out, Entry{
			Name: hdr.Name,
			Dir:  hdr.Typeflag == tar.TypeDir,
			Size: hdr.Size,
		})
	}
}
