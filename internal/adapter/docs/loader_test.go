package docs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "second document")
	writeFile(t, dir, "a.md", "first document")
	writeFile(t, dir, "skip.go", "package main")
	writeFile(t, dir, "empty.txt", "   \n")

	docs, err := NewDirLoader(dir, nil, nil).Load()
	if err != nil {
		t.Fatal(err)
	}

	if len(docs) != 2 {
		t.Fatalf("documents = %d, want 2", len(docs))
	}
	// sorted by path: a.md before b.txt
	if docs[0].Source != "a.md" || docs[1].Source != "b.txt" {
		t.Errorf("order = [%s, %s]", docs[0].Source, docs[1].Source)
	}
	for _, doc := range docs {
		if doc.ID == "" {
			t.Errorf("document %s has no id", doc.Source)
		}
		if doc.Text == "" {
			t.Errorf("document %s has no text", doc.Source)
		}
	}
}

func TestLoadNestedAndExcluded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.txt", "top level")
	writeFile(t, dir, "sub/inner.txt", "nested")
	writeFile(t, dir, "node_modules/dep.txt", "should not load")

	loader := NewDirLoader(dir, nil, []string{"**/node_modules/**"})
	docs, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}

	if len(docs) != 2 {
		t.Fatalf("documents = %d, want 2", len(docs))
	}
	for _, doc := range docs {
		if doc.Source == "dep.txt" {
			t.Error("excluded file was loaded")
		}
	}
}

func TestLoadCustomIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rst", "restructured text")
	writeFile(t, dir, "b.txt", "plain text")

	docs, err := NewDirLoader(dir, []string{"**/*.rst"}, nil).Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].Source != "a.rst" {
		t.Fatalf("documents = %v", docs)
	}
}

func TestLoadStableIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "content")

	loader := NewDirLoader(dir, nil, nil)
	first, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}
	second, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}
	if first[0].ID != second[0].ID {
		t.Error("document id changed between loads of the same path")
	}
}
