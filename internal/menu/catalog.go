// Package menu loads the static menu catalog from a JSON file and
// offers read-only lookups.  The catalog is immutable for the
// lifetime of the process; mutating dishes requires a restart.
package menu

import (
    "encoding/json"
    "fmt"
    "os"

    "github.com/lberndt/gasthaus/internal/model"
)

// Catalog holds the parsed menu.  Items keeps the file order so the
// menu renders the way the restaurant wrote it; byID serves lookups
// during order creation.
type Catalog struct {
    items []model.MenuItem
    byID  map[string]model.MenuItem
}

// Load reads and parses the catalog file at path.  Duplicate ids are
// rejected because order creation must resolve an id to exactly one
// dish.
func Load(path string) (*Catalog, error) {
    raw, err := os.ReadFile(path)
    if err != nil {
        return nil, fmt.Errorf("read menu file: %w", err)
    }
    var items []model.MenuItem
    if err := json.Unmarshal(raw, &items); err != nil {
        return nil, fmt.Errorf("parse menu file %s: %w", path, err)
    }
    byID := make(map[string]model.MenuItem, len(items))
    for _, it := range items {
        if it.ID == "" {
            return nil, fmt.Errorf("menu file %s: item %q has no id", path, it.Name)
        }
        if _, dup := byID[it.ID]; dup {
            return nil, fmt.Errorf("menu file %s: duplicate item id %q", path, it.ID)
        }
        byID[it.ID] = it
    }
    return &Catalog{items: items, byID: byID}, nil
}

// Get returns the item with the given id.  The second return value
// reports whether the id exists in the catalog.
func (c *Catalog) Get(id string) (model.MenuItem, bool) {
    it, ok := c.byID[id]
    return it, ok
}

// Items returns the catalog in file order.  Callers must not modify
// the returned slice.
func (c *Catalog) Items() []model.MenuItem {
    return c.items
}

// Len returns the number of dishes in the catalog.
func (c *Catalog) Len() int { return len(c.items) }
