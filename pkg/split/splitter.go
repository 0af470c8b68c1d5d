package split

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	serrors "github.com/matzehuels/strokeset/pkg/errors"
)

// Stats reports what a [Splitter] did.
type Stats struct {
	Labels  int          // label directories visited
	Files   int          // files visited
	Skipped int          // zero-byte files left out of every split
	Copies  map[Name]int // files copied into each split, coverage copies included
}

// Splitter copies the images under Src (one directory per label) into
// Dst/{train,val,test}/<label>/.
type Splitter struct {
	Src    string
	Dst    string
	Seed   uint64
	Ratios Ratios
	Logger *log.Logger
}

// New creates a splitter with the default ratios. If logger is nil,
// log.Default() is used.
func New(src, dst string, seed uint64, logger *log.Logger) *Splitter {
	if logger == nil {
		logger = log.Default()
	}
	return &Splitter{
		Src:    src,
		Dst:    dst,
		Seed:   seed,
		Ratios: DefaultRatios,
		Logger: logger,
	}
}

// Run performs the split.
//
// Labels are visited in lexical order and each label's files are sorted
// before being shuffled, so the outcome depends only on the directory
// contents and the seed. One value is drawn per file, zero-byte files
// included, so that skipping a file does not shift later assignments.
func (s *Splitter) Run(ctx context.Context) (Stats, error) {
	st := Stats{Copies: make(map[Name]int, len(Names))}
	if err := s.Ratios.Validate(); err != nil {
		return st, err
	}

	entries, err := os.ReadDir(s.Src)
	if errors.Is(err, fs.ErrNotExist) {
		return st, serrors.Wrap(serrors.ErrCodeFileNotFound, err, "read %s", s.Src)
	}
	if err != nil {
		return st, serrors.Wrap(serrors.ErrCodeIO, err, "read %s", s.Src)
	}

	for _, name := range Names {
		if err := os.MkdirAll(filepath.Join(s.Dst, string(name)), 0755); err != nil {
			return st, serrors.Wrap(serrors.ErrCodeIO, err, "create %s split", name)
		}
	}

	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0xdeadbeef))
	for _, e := range entries {
		if !e.IsDir() {
			s.Logger.Debug("ignoring non-directory", "path", filepath.Join(s.Src, e.Name()))
			continue
		}
		st.Labels++
		if err := s.splitLabel(ctx, e.Name(), rng, &st); err != nil {
			return st, err
		}
	}
	return st, nil
}

func (s *Splitter) splitLabel(ctx context.Context, label string, rng *rand.Rand, st *Stats) error {
	dir := filepath.Join(s.Src, label)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return serrors.Wrap(serrors.ErrCodeIO, err, "read %s", dir)
	}

	var files []fs.DirEntry
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, e)
		}
	}
	rng.Shuffle(len(files), func(i, j int) { files[i], files[j] = files[j], files[i] })

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		st.Files++
		p := rng.Float64()
		src := filepath.Join(dir, f.Name())

		for _, name := range Names {
			if err := os.MkdirAll(s.labelDir(name, label), 0755); err != nil {
				return serrors.Wrap(serrors.ErrCodeIO, err, "create %s/%s", name, label)
			}
		}

		info, err := f.Info()
		if err != nil {
			return serrors.Wrap(serrors.ErrCodeIO, err, "stat %s", src)
		}
		if info.Size() == 0 {
			s.Logger.Warn("skipping empty image", "path", src)
			st.Skipped++
			continue
		}

		for _, name := range Names {
			empty, err := isEmptyDir(s.labelDir(name, label))
			if err != nil {
				return err
			}
			if empty {
				if err := s.copyInto(name, label, src, f.Name(), st); err != nil {
					return err
				}
			}
		}

		if err := s.copyInto(Assign(p, s.Ratios), label, src, f.Name(), st); err != nil {
			return err
		}
	}
	return nil
}

func (s *Splitter) labelDir(name Name, label string) string {
	return filepath.Join(s.Dst, string(name), label)
}

func (s *Splitter) copyInto(name Name, label, src, file string, st *Stats) error {
	dst := filepath.Join(s.labelDir(name, label), file)
	if err := copyFile(src, dst); err != nil {
		return err
	}
	s.Logger.Debug("copied", "split", name, "path", dst)
	st.Copies[name]++
	return nil
}

func isEmptyDir(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, serrors.Wrap(serrors.ErrCodeIO, err, "open %s", dir)
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	if err != nil {
		return false, serrors.Wrap(serrors.ErrCodeIO, err, "read %s", dir)
	}
	return false, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return serrors.Wrap(serrors.ErrCodeIO, err, "open %s", src)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return serrors.Wrap(serrors.ErrCodeIO, err, "create %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return serrors.Wrap(serrors.ErrCodeIO, err, "copy %s", src)
	}
	if err := out.Close(); err != nil {
		return serrors.Wrap(serrors.ErrCodeIO, err, "close %s", dst)
	}
	return nil
}
