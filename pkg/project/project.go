// Package project holds the fixed, externally defined catalog of projects
// tasks may reference. The catalog is configuration passed into the UI; it
// is never persisted, and task references are never validated against it.
package project

// Project is one catalog entry.
type Project struct {
	ID   string
	Name string
}

type Catalog []Project

// Default returns the stock catalog.
func Default() Catalog {
	return Catalog{
		{ID: "project-a", Name: "Project A"},
		{ID: "project-b", Name: "Project B"},
		{ID: "project-c", Name: "Project C"},
	}
}

// Name resolves a project id to its display name. Unknown ids resolve to
// themselves, since stored references may point outside the catalog.
func (c Catalog) Name(id string) string {
	for _, p := range c {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}

// Next returns the catalog id after the given one, cycling through
// every project and back to nil (no project). A reference from outside
// the catalog also cycles to nil.
func (c Catalog) Next(id *string) *string {
	if id == nil {
		if len(c) == 0 {
			return nil
		}
		first := c[0].ID
		return &first
	}
	for i, p := range c {
		if p.ID == *id && i+1 < len(c) {
			next := c[i+1].ID
			return &next
		}
	}
	return nil
}
