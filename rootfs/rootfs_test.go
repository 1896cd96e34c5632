package rootfs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
)

func TestNewRejectsMissingAndFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := New(filepath.Join(dir, "missing")); err == nil {
		t.Fatalf("expected error for missing root")
	}
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New(file); err == nil {
		t.Fatalf("expected error for file root")
	}
}

func TestNewReadsInsideRoot(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "assets", "scripts"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "assets", "scripts", "game.js"), []byte("start()"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs, err := New(dir)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	f, err := fs.Open("assets/scripts/game.js")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "start()" {
		t.Fatalf("content got=%q", b)
	}
	infos, err := fs.ReadDir("assets")
	if err != nil || len(infos) != 1 || infos[0].Name() != "scripts" {
		t.Fatalf("ReadDir got=%v err=%v", infos, err)
	}
}

func TestNewConfinesTraversal(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "www")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(parent, "secret"), []byte("nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Symlink(filepath.Join(parent, "secret"), filepath.Join(root, "escape")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	fs, err := New(root)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	for _, name := range []string{"../secret", "escape"} {
		if f, err := fs.Open(name); err == nil {
			b, _ := io.ReadAll(f)
			f.Close()
			if string(b) == "nope" {
				t.Fatalf("%q escaped the root", name)
			}
		}
	}
}

func TestReadOnlyRefusesWrites(t *testing.T) {
	mem := memfs.New()
	f, err := mem.Create("index-simples.html")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	f.Close()

	fs := ReadOnly(mem)
	if _, err := fs.Create("new.txt"); !errors.Is(err, billy.ErrReadOnly) {
		t.Fatalf("Create err=%v", err)
	}
	if _, err := fs.OpenFile("index-simples.html", os.O_RDWR, 0); !errors.Is(err, billy.ErrReadOnly) {
		t.Fatalf("OpenFile rw err=%v", err)
	}
	if err := fs.Remove("index-simples.html"); !errors.Is(err, billy.ErrReadOnly) {
		t.Fatalf("Remove err=%v", err)
	}
	if err := fs.Rename("index-simples.html", "x.html"); !errors.Is(err, billy.ErrReadOnly) {
		t.Fatalf("Rename err=%v", err)
	}
	if err := fs.MkdirAll("d", 0o755); !errors.Is(err, billy.ErrReadOnly) {
		t.Fatalf("MkdirAll err=%v", err)
	}
	if err := fs.Symlink("index-simples.html", "l"); !errors.Is(err, billy.ErrReadOnly) {
		t.Fatalf("Symlink err=%v", err)
	}
	if _, err := fs.TempFile("", "x"); !errors.Is(err, billy.ErrReadOnly) {
		t.Fatalf("TempFile err=%v", err)
	}
	if _, err := fs.Open("index-simples.html"); err != nil {
		t.Fatalf("Open should still work: %v", err)
	}
	if ReadOnly(fs) != fs {
		t.Fatalf("ReadOnly should not double wrap")
	}
	if billy.CapabilityCheck(fs, billy.WriteCapability) {
		t.Fatalf("read-only fs reports write capability")
	}
}
