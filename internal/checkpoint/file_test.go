package checkpoint

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestWriteResults(t *testing.T) {
	t.Parallel()

	t.Run("sorted and deduplicated", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.txt")
		if err := WriteResults(path, []string{"c", "a", "b", "a"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "a\nb\nc\n" {
			t.Errorf("unexpected content %q", got)
		}
	})

	t.Run("creates missing directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "out.txt")
		if err := WriteResults(path, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected file to exist: %v", err)
		}
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := WriteResults(filepath.Join(dir, "out.txt"), []string{"x"}); err != nil {
			t.Fatal(err)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("expected only the results file, got %d entries", len(entries))
		}
	})
}

func TestReadURLList(t *testing.T) {
	t.Parallel()

	t.Run("skips blanks and duplicates", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "seeds.txt")
		content := "https://a\r\n\n  https://b  \nhttps://a\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		got, err := ReadURLList(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []string{"https://a", "https://b"}; !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := ReadURLList(filepath.Join(t.TempDir(), "none.txt")); err == nil {
			t.Error("expected error")
		}
	})
}
