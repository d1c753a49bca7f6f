package source

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
)

// FileSource reads a script of semicolon separated statements from a file.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return s.path }

func (s *FileSource) Statements(ctx context.Context) (<-chan Statement, <-chan error) {
	return readScript(ctx, s.path, func() (io.ReadCloser, error) {
		f, err := os.Open(s.path)
		if err != nil {
			return nil, errors.Wrap(err, "open source file")
		}
		return f, nil
	})
}

func (s *FileSource) Close() error {
	return nil
}

// StdinSource reads a script of semicolon separated statements from
// standard input.
type StdinSource struct{}

func NewStdinSource() *StdinSource {
	return &StdinSource{}
}

func (s *StdinSource) Name() string { return "stdin" }

func (s *StdinSource) Statements(ctx context.Context) (<-chan Statement, <-chan error) {
	return readScript(ctx, "stdin", func() (io.ReadCloser, error) {
		return io.NopCloser(os.Stdin), nil
	})
}

func (s *StdinSource) Close() error {
	return nil
}

func readScript(ctx context.Context, origin string, open func() (io.ReadCloser, error)) (<-chan Statement, <-chan error) {
	ch := make(chan Statement, 64)
	errc := make(chan error, 1)

	go func() {
		defer close(errc)
		defer close(ch)

		r, err := open()
		if err != nil {
			errc <- err
			return
		}
		defer r.Close()

		script, err := io.ReadAll(r)
		if err != nil {
			errc <- errors.Wrapf(err, "read %s", origin)
			return
		}

		for i, sql := range Split(string(script)) {
			if !emit(ctx, ch, Statement{Origin: origin, Index: i + 1, SQL: sql}) {
				errc <- ctx.Err()
				return
			}
		}
	}()

	return ch, errc
}
