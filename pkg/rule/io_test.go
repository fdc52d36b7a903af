package rule

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/errors"
)

func TestReadJSON(t *testing.T) {
	in := `{
		"name": "jca",
		"rules": [{"name": "Cipher"}, {"name": "SecureRandom", "label": "PRNG"}],
		"requires": [{"consumer": "Cipher", "provider": "SecureRandom"}]
	}`

	u, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if u.Name != "jca" {
		t.Errorf("Name = %q, want jca", u.Name)
	}
	if len(u.Rules) != 2 || len(u.Requires) != 1 {
		t.Errorf("parsed %d rules and %d requires, want 2 and 1", len(u.Rules), len(u.Requires))
	}
	if r, ok := u.Lookup("SecureRandom"); !ok || r.Label != "PRNG" {
		t.Errorf("Lookup(SecureRandom) = %v, %v", r, ok)
	}
}

func TestReadJSON_Malformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("{not json"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want code %v", err, errors.ErrCodeInvalidFormat)
	}
}

func TestReadJSON_InvalidUniverse(t *testing.T) {
	in := `{"rules": [{"name": "A"}, {"name": "A"}]}`

	_, err := ReadJSON(strings.NewReader(in))
	if !errors.Is(err, errors.ErrCodeInvalidUniverse) {
		t.Errorf("error = %v, want code %v", err, errors.ErrCodeInvalidUniverse)
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	u := testUniverse()

	var buf bytes.Buffer
	if err := WriteJSON(u, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if got.Fingerprint() != u.Fingerprint() {
		t.Error("round-trip changed the universe fingerprint")
	}
}

func TestImportExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jca.json")

	if err := ExportJSON(testUniverse(), path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	u, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if u.Name != "jca" || len(u.Rules) != 3 {
		t.Errorf("imported universe = %+v", u)
	}
}

func TestImportJSON_MissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want code %v", err, errors.ErrCodeFileNotFound)
	}
}
