package entities

import (
	"encoding/json"
	"fmt"
)

// Document is a stored record as the document store sees it: a backend
// assigned identifier plus a JSON shaped field map. The identifier is never
// part of Fields.
type Document struct {
	ID     string
	Fields map[string]interface{}
}

// Decode merges the identifier into the field set and decodes the result
// into a typed record.
func (d *Document) Decode(out interface{}) error {
	raw, err := json.Marshal(d.Map())
	if err != nil {
		return fmt.Errorf("encode document %s: %w", d.ID, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document %s: %w", d.ID, err)
	}
	return nil
}

// Map returns the fields with the identifier merged in.
func (d *Document) Map() map[string]interface{} {
	merged := make(map[string]interface{}, len(d.Fields)+1)
	for k, v := range d.Fields {
		merged[k] = v
	}
	merged["id"] = d.ID
	return merged
}

// EncodeFields turns a typed record into a document field map. Any "id" key
// is dropped.
func EncodeFields(record interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	fields := map[string]interface{}{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	delete(fields, "id")
	return fields, nil
}

// DecodeAll decodes a list of documents into typed records.
func DecodeAll[T any](docs []*Document) ([]*T, error) {
	out := make([]*T, 0, len(docs))
	for _, doc := range docs {
		var record T
		if err := doc.Decode(&record); err != nil {
			return nil, err
		}
		out = append(out, &record)
	}
	return out, nil
}
