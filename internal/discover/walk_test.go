package discover

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writePNG writes a 1x1 PNG at dir/rel, creating parent directories.
func writePNG(t *testing.T, dir, rel string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

func writeFile(t *testing.T, dir, rel string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestWalk_LexicalOrder(t *testing.T) {
	root := t.TempDir()
	writePNG(t, root, "b.png")
	writePNG(t, root, "a.png")
	writePNG(t, root, "sub/c.png")
	writePNG(t, root, "A.png")

	files, err := Walk(root, DefaultMaxDepth)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{
		filepath.Join(root, "A.png"),
		filepath.Join(root, "a.png"),
		filepath.Join(root, "b.png"),
		filepath.Join(root, "sub", "c.png"),
	}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, files[i], want[i])
		}
	}
}

func TestWalk_SignatureFilter(t *testing.T) {
	root := t.TempDir()
	want := writePNG(t, root, "no_extension")
	writeFile(t, root, "fake.png", []byte("definitely not a png"))
	writeFile(t, root, "short.png", []byte{0x89, 'P'})
	writeFile(t, root, "empty.png", nil)

	files, err := Walk(root, DefaultMaxDepth)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(files) != 1 || files[0] != want {
		t.Errorf("got %v, want [%s]", files, want)
	}
}

func TestWalk_DepthBound(t *testing.T) {
	root := t.TempDir()
	writePNG(t, root, "d1.png")
	writePNG(t, root, "x/d2.png")
	writePNG(t, root, "x/y/d3.png")
	writePNG(t, root, "x/y/z/d4.png")

	tests := []struct {
		maxDepth int
		want     int
	}{
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 4},
		{10, 4},
	}

	for _, tt := range tests {
		files, err := Walk(root, tt.maxDepth)
		if err != nil {
			t.Fatalf("Walk(%d) failed: %v", tt.maxDepth, err)
		}
		if len(files) != tt.want {
			t.Errorf("maxDepth %d: got %d files %v, want %d", tt.maxDepth, len(files), files, tt.want)
		}
	}
}

func TestWalk_InvalidDepth(t *testing.T) {
	if _, err := Walk(t.TempDir(), 0); err == nil {
		t.Error("Walk should reject a depth below 1")
	}
}

func TestWalk_SingleFile(t *testing.T) {
	path := writePNG(t, t.TempDir(), "only.png")

	files, err := Walk(path, 1)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("got %v, want [%s]", files, path)
	}
}

func TestWalk_Empty(t *testing.T) {
	files, err := Walk(t.TempDir(), DefaultMaxDepth)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("got %v, want none", files)
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	if _, err := Walk(filepath.Join(t.TempDir(), "missing"), DefaultMaxDepth); err == nil {
		t.Error("Walk should fail for a missing root")
	}
}

func TestWalk_Symlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := t.TempDir()
	target := writePNG(t, t.TempDir(), "target.png")
	link := filepath.Join(root, "link.png")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "gone.png"), filepath.Join(root, "dangling.png")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	if _, err := Walk(root, DefaultMaxDepth); err == nil {
		t.Error("Walk should fail on a dangling link")
	}

	if err := os.Remove(filepath.Join(root, "dangling.png")); err != nil {
		t.Fatalf("failed to remove link: %v", err)
	}
	files, err := Walk(root, DefaultMaxDepth)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(files) != 1 || files[0] != link {
		t.Errorf("got %v, want [%s]", files, link)
	}
}

func TestWalk_UnreadableFile(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	root := t.TempDir()
	path := writePNG(t, root, "locked.png")
	if err := os.Chmod(path, 0); err != nil {
		t.Fatalf("failed to chmod: %v", err)
	}

	if _, err := Walk(root, DefaultMaxDepth); err == nil {
		t.Error("Walk should fail on an unreadable file")
	}
}
