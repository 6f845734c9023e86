// Package storage owns the on-disk representation of the expense and
// income record families. Each family is persisted as one whole JSON
// document; every write is a full serialize-and-rename so a reader
// never observes a partial document. The repository types in this
// package are the only components that touch the documents directly;
// everything else receives copies.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"billfold/internal/core"
)

// ErrStorageUnavailable wraps any filesystem failure other than
// first-time absence, which is handled by auto-initialization.
var ErrStorageUnavailable = errors.New("storage unavailable")

const (
	expensesDocument = "expenses.json"
	incomeDocument   = "income.json"
)

// DocumentStore reads and writes the two record-family documents under
// a single data directory. Access to each family is serialized by a
// per-family mutex: a concurrent load-modify-save cycle on the same
// family would otherwise lose updates, since every save rewrites the
// whole document. The deployment is single-process, so in-process
// locks are sufficient.
type DocumentStore struct {
	dir string
	now func() time.Time

	expensesMu sync.Mutex
	incomeMu   sync.Mutex
}

// NewDocumentStore creates the data directory if needed and returns a
// store rooted there.
func NewDocumentStore(dir string) (*DocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w: %w", dir, ErrStorageUnavailable, err)
	}
	return &DocumentStore{dir: dir, now: time.Now}, nil
}

// loadExpenses reads the expense document. A missing file initializes
// the family to an empty collection and persists that default. The
// caller must hold expensesMu across the whole read-modify-write
// cycle.
func (s *DocumentStore) loadExpenses() ([]core.Expense, error) {
	path := filepath.Join(s.dir, expensesDocument)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.saveExpenses(nil); err != nil {
			return nil, err
		}
		return []core.Expense{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", expensesDocument, ErrStorageUnavailable, err)
	}
	var items []core.Expense
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", expensesDocument, ErrStorageUnavailable, err)
	}
	return items, nil
}

func (s *DocumentStore) saveExpenses(items []core.Expense) error {
	if items == nil {
		items = []core.Expense{}
	}
	return s.writeDocument(expensesDocument, items)
}

// loadIncome reads the income singleton, initializing it to a zero
// amount stamped with the current month on first access. The caller
// must hold incomeMu across the whole cycle.
func (s *DocumentStore) loadIncome() (core.Income, error) {
	path := filepath.Join(s.dir, incomeDocument)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		def := core.Income{Month: s.now().Format(core.MonthLayout)}
		if err := s.saveIncome(def); err != nil {
			return core.Income{}, err
		}
		return def, nil
	}
	if err != nil {
		return core.Income{}, fmt.Errorf("read %s: %w: %w", incomeDocument, ErrStorageUnavailable, err)
	}
	var inc core.Income
	if err := json.Unmarshal(data, &inc); err != nil {
		return core.Income{}, fmt.Errorf("decode %s: %w: %w", incomeDocument, ErrStorageUnavailable, err)
	}
	return inc, nil
}

func (s *DocumentStore) saveIncome(inc core.Income) error {
	return s.writeDocument(incomeDocument, inc)
}

// writeDocument serializes v and atomically replaces the named
// document: the bytes land in a temp file in the same directory, then
// a rename swaps it in. A crash mid-write leaves the prior document
// intact.
func (s *DocumentStore) writeDocument(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w: %w", name, ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w: %w", name, ErrStorageUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w: %w", name, ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w: %w", name, ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w: %w", name, ErrStorageUnavailable, err)
	}
	return nil
}
