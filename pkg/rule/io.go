package rule

import (
	"encoding/json"
	"io"
	"os"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/errors"
)

// ReadJSON decodes a JSON universe from r.
//
// The input must be a JSON object with "rules" and "requires" arrays:
//
//	{
//	  "name": "jca",
//	  "rules": [{"name": "Cipher"}, {"name": "SecureRandom"}],
//	  "requires": [{"consumer": "Cipher", "provider": "SecureRandom"}]
//	}
//
// Each rule must have a "name" field. Optional fields:
//   - label: display label (defaults to the name)
//   - meta: object with arbitrary key-value pairs
//
// A "reverses" array with the same shape as "requires" may supply the
// upstream reverse relation; when absent the transpose of "requires" is
// derived on demand.
//
// ReadJSON returns an error when the JSON is malformed or the universe fails
// [Universe.Validate]. Requirements referencing undeclared rules are accepted;
// the resolver normalizes them. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Universe, error) {
	var u Universe
	if err := json.NewDecoder(r).Decode(&u); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode universe")
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return &u, nil
}

// ImportJSON reads the JSON universe file at path. The file is opened,
// decoded with [ReadJSON], and closed; failures carry the path for context.
func ImportJSON(path string) (*Universe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	u, err := ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "import %s", path)
	}
	return u, nil
}

// WriteJSON encodes a universe as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(u *Universe, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(u); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode universe")
	}
	return nil
}

// ExportJSON writes a universe to a JSON file at path.
func ExportJSON(u *Universe, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(u, f)
}
