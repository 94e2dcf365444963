package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chrisdamba/menuprofit/internal/models"
)

// Store reads the catalog and order lines from JSON or CSV files, chosen by extension.
// Files are re-read on every call so analytics always reflect the current data.
type Store struct {
	catalogPath string
	ordersPath  string
	mu          sync.Mutex
}

func NewStore(catalogPath, ordersPath string) *Store {
	return &Store{catalogPath: catalogPath, ordersPath: ordersPath}
}

type MenuItemRepository struct{ s *Store }

type OrderRepository struct{ s *Store }

func (s *Store) MenuItems() *MenuItemRepository { return &MenuItemRepository{s: s} }

func (s *Store) Orders() *OrderRepository { return &OrderRepository{s: s} }

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

func readFile[T any](path string, decodeJSON, decodeCSV func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if isCSV(path) {
		return decodeCSV(f)
	}
	return decodeJSON(f)
}

func writeJSON(path string, v any) error {
	if isCSV(path) {
		return fmt.Errorf("writing %s: only JSON files are writable", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (r *MenuItemRepository) GetAll(_ context.Context) ([]models.MenuItem, error) {
	items, err := readFile(r.s.catalogPath, decodeMenuItemsJSON, decodeMenuItemsCSV)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.s.catalogPath, err)
	}
	return items, nil
}

func (r *MenuItemRepository) BulkCreate(ctx context.Context, items []models.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	return writeJSON(r.s.catalogPath, append(existing, items...))
}

// Create inserts or replaces the item with the same id.
func (r *MenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range existing {
		if existing[i].ItemID == item.ItemID {
			existing[i] = *item
			replaced = true
		}
	}
	if !replaced {
		existing = append(existing, *item)
	}
	return writeJSON(r.s.catalogPath, existing)
}

func (r *MenuItemRepository) Count(ctx context.Context) (int, error) {
	items, err := r.GetAll(ctx)
	return len(items), err
}

func (r *MenuItemRepository) DeleteAll(_ context.Context) error {
	return removeIfExists(r.s.catalogPath)
}

func (r *OrderRepository) Find(_ context.Context, filter models.Filter) ([]models.OrderLine, error) {
	lines, err := readFile(r.s.ordersPath, decodeOrdersJSON, decodeOrdersCSV)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.s.ordersPath, err)
	}
	f := filter.Normalize()
	out := lines[:0]
	for _, line := range lines {
		if f.Matches(line) {
			out = append(out, line)
		}
	}
	return out, nil
}

func (r *OrderRepository) BulkCreate(ctx context.Context, lines []models.OrderLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, err := r.Find(ctx, models.Filter{})
	if err != nil {
		return err
	}
	return writeJSON(r.s.ordersPath, append(existing, lines...))
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	lines, err := r.Find(ctx, models.Filter{})
	return len(lines), err
}

func (r *OrderRepository) DeleteAll(_ context.Context) error {
	return removeIfExists(r.s.ordersPath)
}

// DataVersion changes when either file is rewritten.
func (s *Store) DataVersion(_ context.Context) (string, error) {
	parts := make([]string, 0, 2)
	for _, path := range []string{s.catalogPath, s.ordersPath} {
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			parts = append(parts, "none")
			continue
		}
		if err != nil {
			return "", err
		}
		parts = append(parts, fmt.Sprintf("%d-%d", info.Size(), info.ModTime().UnixNano()))
	}
	return "file:" + strings.Join(parts, ":"), nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
