package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"booking_service/domain"
)

// document is the whole on-disk state: one JSON file with three named
// collections of flat records keyed by id.
type document struct {
	Accounts       []*domain.Account       `json:"accounts"`
	Accommodations []*domain.Accommodation `json:"accommodations"`
	Reservations   []*domain.Reservation   `json:"reservations"`
}

// FileDatabase reads the whole document into memory, mutates it and writes the
// whole document back. The mutex is the store-wide critical section, every
// write is serialized relative to every other write so no update is lost.
type FileDatabase struct {
	mu   sync.Mutex
	path string
}

func NewFileDatabase(path string) (*FileDatabase, error) {
	db := &FileDatabase{path: path}

	// Ensure the default structure exists.
	err := db.update(func(doc *document) error { return nil })
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (db *FileDatabase) load() (*document, error) {
	doc := &document{
		Accounts:       []*domain.Account{},
		Accommodations: []*domain.Accommodation{},
		Reservations:   []*domain.Reservation{},
	}

	raw, err := os.ReadFile(db.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, err
	}

	if len(raw) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (db *FileDatabase) save(doc *document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	// Write to a temp file in the same directory and rename, a crashed write
	// never leaves a half document behind.
	tmp, err := os.CreateTemp(filepath.Dir(db.path), ".db-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), db.path)
}

// view runs a read against a consistent snapshot of the document.
func (db *FileDatabase) view(fn func(doc *document) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	doc, err := db.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// update runs a read-modify-write cycle as one exclusive section.
func (db *FileDatabase) update(fn func(doc *document) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	doc, err := db.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return db.save(doc)
}
