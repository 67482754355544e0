package sources

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_BuiltinList(t *testing.T) {
	list, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load built-in feed list: %v", err)
	}

	if len(list.Groups) == 0 {
		t.Fatal("Built-in feed list should have groups")
	}
	if list.Count() == 0 {
		t.Fatal("Built-in feed list should have feeds")
	}
	if len(list.URLs()) != list.Count() {
		t.Errorf("URLs() returned %d entries, Count() says %d", len(list.URLs()), list.Count())
	}
}

func TestLoad_CustomFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feeds.yml")

	content := `groups:
  - name: Test Group
    feeds:
      - https://example.com/rss.xml
      - https://example.org/feed/
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	list, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load custom feed file: %v", err)
	}

	if list.Count() != 2 {
		t.Errorf("Expected 2 feeds, got %d", list.Count())
	}
	if list.Groups[0].Name != "Test Group" {
		t.Errorf("Expected group name 'Test Group', got '%s'", list.Groups[0].Name)
	}
}

func TestLoad_InvalidURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feeds.yml")

	content := `groups:
  - name: Bad
    feeds:
      - not-a-url
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for non-HTTP feed URL")
	}
}

func TestLoad_DuplicateURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feeds.yml")

	content := `groups:
  - name: A
    feeds:
      - https://example.com/rss.xml
  - name: B
    feeds:
      - https://example.com/rss.xml
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for duplicate feed URL")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/feeds.yml"); err == nil {
		t.Error("Expected error for missing feeds file")
	}
}
