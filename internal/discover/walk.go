package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/spritepack/internal/imaging"
)

// DefaultMaxDepth is how many directory levels below the root are searched
// when nothing else is configured.
const DefaultMaxDepth = 10

// Walk returns every PNG file under root, in lexical order.
//
// Parameters:
//   - root: Directory to search. A single file is also accepted.
//   - maxDepth: Deepest level to visit. Entries directly inside root are at
//     depth 1; directories at maxDepth are listed but not entered.
//
// Returns:
//   - []string: Paths, each joined onto root, of files that start with the
//     PNG signature. The extension is not consulted.
//   - error: Non-nil if root or anything beneath it cannot be read. A file
//     that cannot be opened stops the walk rather than being skipped, so a
//     batch is never packed with pieces silently missing.
//
// Symbolic links to regular files are followed; links to directories are
// not.
func Walk(root string, maxDepth int) ([]string, error) {
	if maxDepth < 1 {
		return nil, fmt.Errorf("max depth must be at least 1, got %d", maxDepth)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		if d.IsDir() {
			if path != root && depth(root, path) >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			if d.Type()&fs.ModeSymlink == 0 {
				return nil
			}
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to follow %s: %w", path, err)
			}
			if !info.Mode().IsRegular() {
				return nil
			}
		}

		ok, err := imaging.IsPNG(path)
		if err != nil {
			return err
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// depth counts the path elements of path below root.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
