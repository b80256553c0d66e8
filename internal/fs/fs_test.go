package fs

import (
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/gollum.go/internal/exc"
	"gopkg.microglot.org/gollum.go/internal/idl"
)

func TestReadAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	content := ""
	for len(content) < 3*readChunk {
		content = content + "f(x, y) : a -> b\n"
	}
	for _, text := range []string{"", "x", content} {
		f := NewFileString("/test.gollum", text, idl.FileKindGollum)
		out, err := ReadAll(ctx, f)
		require.NoError(t, err)
		require.Equal(t, text, out)
	}
}

func TestReadAllBodyError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	boom := errors.New("boom")
	f := NewFileFN("/test.gollum", func() (io.ReadCloser, error) {
		return nil, boom
	}, idl.FileKindGollum)
	_, err := ReadAll(ctx, f)
	require.ErrorIs(t, err, boom)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, idl.FileKindGollum, KindOf("/a/b.gollum"))
	require.Equal(t, idl.FileKindGollumType, KindOf("b.gollumtype"))
	require.Equal(t, idl.FileKindNone, KindOf("b.txt"))
	require.Equal(t, idl.FileKindNone, KindOf("gollum"))
}

func TestFileSystemLocal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.gollum"), []byte("f(x)"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "sig.gollumtype"), []byte("a -> b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "README"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "nested", "skip.gollum"), []byte("1"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	fsys, err := NewFileSystemLocal(root)
	require.NoError(t, err)

	files, err := fsys.Open(ctx, "/src/main.gollum")
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "/src/main.gollum", files[0].Path(ctx))
	require.Equal(t, idl.FileKindGollum, files[0].Kind(ctx))
	text, err := ReadAll(ctx, files[0])
	require.NoError(t, err)
	require.Equal(t, "f(x)", text)

	files, err = fsys.Open(ctx, "file:///src")
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "/src/main.gollum", files[0].Path(ctx))
	require.Equal(t, "/src/sig.gollumtype", files[1].Path(ctx))
	require.Equal(t, idl.FileKindGollumType, files[1].Kind(ctx))

	_, err = fsys.Open(ctx, "/missing.gollum")
	requireCode(t, err, exc.CodeFileNotFound)

	_, err = fsys.Open(ctx, "/empty")
	requireCode(t, err, exc.CodeFileNotFound)
}

func TestFileSystemLocalOptions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mem := fstest.MapFS{
		"lib/a.gollum": &fstest.MapFile{Data: []byte("a")},
		"lib/b.other":  &fstest.MapFile{Data: []byte("b")},
	}
	fsys, err := NewFileSystemLocal("/",
		WithOptionFSFactory(func(root string) iofs.FS { return mem }),
		WithOptionFileFilter(func(ctx context.Context, fname string) bool {
			return filepath.Ext(fname) == ".other"
		}),
	)
	require.NoError(t, err)

	files, err := fsys.Open(ctx, "lib")
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "/lib/b.other", files[0].Path(ctx))
	require.Equal(t, idl.FileKindNone, files[0].Kind(ctx))
}

func TestFileSystemMulti(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	first, err := NewFileSystemLocal("/", WithOptionFSFactory(func(string) iofs.FS {
		return fstest.MapFS{"a.gollum": &fstest.MapFile{Data: []byte("first")}}
	}))
	require.NoError(t, err)
	second, err := NewFileSystemLocal("/", WithOptionFSFactory(func(string) iofs.FS {
		return fstest.MapFS{
			"a.gollum": &fstest.MapFile{Data: []byte("second")},
			"b.gollum": &fstest.MapFile{Data: []byte("second")},
		}
	}))
	require.NoError(t, err)
	multi := FileSystemMulti{first, second}

	files, err := multi.Open(ctx, "/a.gollum")
	require.NoError(t, err)
	text, err := ReadAll(ctx, files[0])
	require.NoError(t, err)
	require.Equal(t, "first", text)

	files, err = multi.Open(ctx, "/b.gollum")
	require.NoError(t, err)
	text, err = ReadAll(ctx, files[0])
	require.NoError(t, err)
	require.Equal(t, "second", text)

	_, err = multi.Open(ctx, "/c.gollum")
	requireCode(t, err, exc.CodeFileNotFound)
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var e exc.Exception
	require.True(t, errors.As(err, &e), "%v is not an exception", err)
	require.Equal(t, code, e.Code())
}

func TestFileSystemLocalPathCharacters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	root := t.TempDir()
	for _, name := range []string{"a#1.gollum", "a?b.gollum", "a.gollum"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(name), 0o644))
	}
	fsys, err := NewFileSystemLocal(root)
	require.NoError(t, err)

	for _, uri := range []string{"/a#1.gollum", "/a?b.gollum", "file:///a.gollum"} {
		files, err := fsys.Open(ctx, uri)
		require.NoError(t, err, uri)
		require.Len(t, files, 1)
		text, err := ReadAll(ctx, files[0])
		require.NoError(t, err)
		require.Equal(t, filepath.Base(files[0].Path(ctx)), text)
	}
}
