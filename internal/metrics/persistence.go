package metrics

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FilePersistence keeps the record in a JSON file. Anything unreadable or
// unparsable loads as the zero record so the dashboard never breaks on a
// damaged file.
type FilePersistence struct {
	path string
}

// NewFilePersistence stores the record at path.
func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{path: path}
}

func (p *FilePersistence) Load() Record {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return Record{}
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return Record{}
	}
	return record
}

func (p *FilePersistence) Save(record Record) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// MemoryPersistence keeps the record in memory; tests and ephemeral runs use
// it instead of touching shared storage.
type MemoryPersistence struct {
	record Record
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

func (p *MemoryPersistence) Load() Record {
	return p.record
}

func (p *MemoryPersistence) Save(record Record) error {
	p.record = record
	return nil
}
