package models

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/tablecraft/insight-engine/pkg/jsonutil"
)

// Record is one flattened table row. All values are strings; the engine
// re-interprets them as numbers where the content allows.
type Record map[string]string

// UnmarshalJSON accepts record values in whatever scalar form the export
// wrote them: strings, bare numbers, booleans or nulls.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rec := make(Record, len(raw))
	for field, value := range raw {
		rec[field] = jsonutil.FlexibleStringValue(value)
	}
	*r = rec
	return nil
}

// UnmarshalYAML applies the same scalar coercion for YAML snapshots.
func (r *Record) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]interface{}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	rec := make(Record, len(raw))
	for field, v := range raw {
		rec[field] = jsonutil.FlexibleString(v)
	}
	*r = rec
	return nil
}

// FileRecords is the flattened content of one data table file as handed
// over by the extraction pipeline. Unparseable marks files the extractor
// could not read; such files carry no records.
type FileRecords struct {
	FileKey     string   `json:"file_key" yaml:"file_key"`
	Unparseable bool     `json:"unparseable,omitempty" yaml:"unparseable,omitempty"`
	Records     []Record `json:"records" yaml:"records"`
}

// DataSnapshot is the complete handoff from the extraction pipeline: the
// discovered relationship catalogue plus every table's flattened records.
type DataSnapshot struct {
	Relationships []Relationship `json:"relationships" yaml:"relationships"`
	Files         []FileRecords  `json:"files" yaml:"files"`
}

// FileByKey returns the file entry with the given key, or nil.
func (s *DataSnapshot) FileByKey(key string) *FileRecords {
	for i := range s.Files {
		if s.Files[i].FileKey == key {
			return &s.Files[i]
		}
	}
	return nil
}
