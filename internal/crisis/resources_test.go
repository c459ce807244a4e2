package crisis

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDirectoryMissingFileFallsBack(t *testing.T) {
	dir := LoadDirectory(filepath.Join(t.TempDir(), "nope.json"))
	if len(dir) == 0 {
		t.Fatal("expected built-in defaults for a missing file")
	}
	if _, ok := dir["emergency"]; !ok {
		t.Error("defaults must include the emergency category")
	}
}

func TestLoadDirectoryBadJSONFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	dir := LoadDirectory(path)
	if _, ok := dir["suicide_prevention"]; !ok {
		t.Error("defaults must include suicide_prevention after a parse failure")
	}
}

func TestLoadDirectoryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")
	content := `{"emergency": {"title": "Emergency", "contacts": [{"name": "Local Line", "number": "112", "description": "EU emergency number"}]}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	dir := LoadDirectory(path)
	contacts := dir["emergency"].Contacts
	if len(contacts) != 1 || contacts[0].Number != "112" {
		t.Errorf("unexpected contacts: %+v", contacts)
	}
}

func TestQuickContacts(t *testing.T) {
	quick := DefaultDirectory().QuickContacts()
	if len(quick) != 4 {
		t.Fatalf("expected 4 quick contacts, got %d", len(quick))
	}
	if quick[0].Number != "911" {
		t.Errorf("expected emergency services first, got %+v", quick[0])
	}
	if quick[2].Number != "988" {
		t.Errorf("expected the 988 lifeline third, got %+v", quick[2])
	}
}
