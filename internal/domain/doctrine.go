package domain

import (
	"slices"
	"strings"
)

// Doctrine is one named loadout: an ordered list of categories.
type Doctrine struct {
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
}

// Category is one grouping of item (ship) names.
type Category struct {
	Ships []string `json:"ships"`
}

// Ships returns every ship of the doctrine in category order.
func (d Doctrine) Ships() []string {
	var n int
	for _, c := range d.Categories {
		n += len(c.Ships)
	}

	ships := make([]string, 0, n)
	for _, c := range d.Categories {
		ships = append(ships, c.Ships...)
	}

	return ships
}

// XUp renders the x-up line for the doctrine: "x " followed by all ships
// separated by " / ".
func (d Doctrine) XUp() string {
	return "x " + strings.Join(d.Ships(), " / ")
}

// Catalog indexes doctrines by name. Later doctrines replace earlier ones
// with the same name.
type Catalog struct {
	byName map[string]Doctrine
}

// NewCatalog builds a catalog from doctrines in document order and returns
// the names that were overwritten by a later entry.
func NewCatalog(doctrines []Doctrine) (*Catalog, []string) {
	c := &Catalog{byName: make(map[string]Doctrine, len(doctrines))}

	var duplicates []string
	for _, d := range doctrines {
		if _, exists := c.byName[d.Name]; exists {
			duplicates = append(duplicates, d.Name)
		}
		c.byName[d.Name] = d
	}

	return c, duplicates
}

// Len returns the number of distinct doctrine names.
func (c *Catalog) Len() int {
	return len(c.byName)
}

// Names returns the doctrine names in lexical order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Lookup returns the doctrine with the given name.
func (c *Catalog) Lookup(name string) (Doctrine, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// Get returns the doctrine with the given name or a NotFoundError.
func (c *Catalog) Get(name string) (Doctrine, error) {
	d, ok := c.byName[name]
	if !ok {
		return Doctrine{}, NewNotFoundError("doctrine", name)
	}

	return d, nil
}
