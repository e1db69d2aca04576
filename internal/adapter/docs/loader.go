package docs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"searchlab/internal/domain"
)

// DirLoader walks a directory and loads matching files as plain-text
// documents. It is the Document supplier for the benchmark CLI; binary
// formats stay out of scope, so the defaults only admit text files.
type DirLoader struct {
	root     string
	includes []string
	excludes []string
}

// DefaultIncludes covers the plain-text formats the loader understands.
var DefaultIncludes = []string{"**/*.txt", "**/*.md", "**/*.markdown"}

// NewDirLoader creates a loader rooted at root. Empty include patterns fall
// back to DefaultIncludes.
func NewDirLoader(root string, includes, excludes []string) *DirLoader {
	if len(includes) == 0 {
		includes = DefaultIncludes
	}
	return &DirLoader{root: root, includes: includes, excludes: excludes}
}

// Load reads every matching file under the root, sorted by path so repeated
// runs see the same document order. Empty files are skipped.
func (l *DirLoader) Load() ([]domain.Document, error) {
	root, err := filepath.Abs(l.root)
	if err != nil {
		return nil, err
	}

	var paths []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if info.IsDir() {
			if l.matches(l.excludes, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if l.matches(l.includes, rel) && !l.matches(l.excludes, rel) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(paths)

	var documents []domain.Document
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		text := string(data)
		if strings.TrimSpace(text) == "" {
			continue
		}
		documents = append(documents, domain.Document{
			ID:      docID(path),
			Source:  filepath.Base(path),
			Text:    text,
			AddedAt: time.Now().UTC(),
		})
	}
	return documents, nil
}

func (l *DirLoader) matches(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func docID(path string) string {
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:8])
}
