package repository

import (
	"encoding/json"
	"fmt"

	"airquality_dashboard/internal/models"
)

// timestampKey is restamped on every merge.
const timestampKey = "timestamp"

// Document is the stored snapshot as raw top-level JSON values. Keys the
// typed snapshot does not know about are carried through untouched.
type Document map[string]json.RawMessage

// NewDocument splits a typed snapshot into its top-level keys.
func NewDocument(s models.Snapshot) (Document, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return ParseDocument(b)
}

// ParseDocument parses a JSON object. Anything other than an object is
// rejected with models.ErrInvalidArgument.
func ParseDocument(b []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("%w: body must be a JSON object: %v", models.ErrInvalidArgument, err)
	}
	if d == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", models.ErrInvalidArgument)
	}
	return d, nil
}

// Partial builds a document from already typed values.
func Partial(values map[string]any) (Document, error) {
	d := make(Document, len(values))
	for k, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		d[k] = b
	}
	return d, nil
}

// Decode reads the known keys into a typed snapshot.
func (d Document) Decode() (models.Snapshot, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return models.Snapshot{}, err
	}
	var s models.Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return models.Snapshot{}, err
	}
	return s, nil
}

// Clone copies the key set. Raw values are never mutated in place, so they
// are shared.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
