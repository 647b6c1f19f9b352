package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// Index maps lowercase normal-map stems to filesystem paths.
// When several files share a stem, PNG wins over TGA, which wins over JPEG
// (lossless formats keep the encoded normals exact).
type Index struct {
	entries map[string]string // stem.lower() → full path
}

var extPriority = map[string]int{
	".png":  3,
	".tga":  2,
	".jpg":  1,
	".jpeg": 1,
}

// BuildIndex scans dir and its subdirectories for normal-map images.
// A missing directory yields an empty index.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	if dir == "" {
		return idx
	}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		prio, ok := extPriority[ext]
		if !ok {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())))
		if cur, exists := idx.entries[stem]; exists {
			if extPriority[strings.ToLower(filepath.Ext(cur))] >= prio {
				return nil
			}
		}
		idx.entries[stem] = path
		return nil
	})

	return idx
}

// ResolvePath returns the file path for a normal-map name.
// The name may be a bare stem, a file name, or a path to an existing file.
func (idx *Index) ResolvePath(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if _, err := os.Stat(name); err == nil {
		return name, true
	}
	base := filepath.Base(name)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	p, ok := idx.entries[stem]
	return p, ok
}

// Len returns the number of indexed normal maps.
func (idx *Index) Len() int {
	return len(idx.entries)
}
