package core

// Catalog resolves sound identifiers to definitions.
type Catalog interface {
	// Resolve returns a copy of the definition for id.
	Resolve(id string) (SoundDefinition, bool)
	// All returns every definition in catalog order.
	All() []SoundDefinition
}

// StaticCatalog is an ordered, read-only list of definitions.
type StaticCatalog struct {
	defs  []SoundDefinition
	index map[string]int
}

// NewStaticCatalog copies defs into a catalog. When an ID repeats, the first
// occurrence wins.
func NewStaticCatalog(defs []SoundDefinition) *StaticCatalog {
	c := &StaticCatalog{
		defs:  make([]SoundDefinition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if _, ok := c.index[d.ID]; ok {
			continue
		}
		c.index[d.ID] = len(c.defs)
		c.defs = append(c.defs, d.Clone())
	}
	return c
}

// Builtin returns the built-in sound table.
func Builtin() *StaticCatalog {
	return NewStaticCatalog(builtinSounds)
}

func (c *StaticCatalog) Resolve(id string) (SoundDefinition, bool) {
	i, ok := c.index[id]
	if !ok {
		return SoundDefinition{}, false
	}
	return c.defs[i].Clone(), true
}

func (c *StaticCatalog) All() []SoundDefinition {
	return cloneDefinitions(c.defs)
}

// Has reports whether id is present.
func (c *StaticCatalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Merge layers custom definitions under the built-in ones. Built-in entries
// win on ID collision, so a custom sound can never shadow a shipped one.
func Merge(builtin Catalog, custom []SoundDefinition) Catalog {
	defs := builtin.All()
	defs = append(defs, custom...)
	return NewStaticCatalog(defs)
}

// DisplayName is the catalog name for the row's sound, or the raw sound ID
// when it does not resolve.
func DisplayName(c Catalog, row Row) string {
	if d, ok := c.Resolve(row.SoundID); ok && d.Name != "" {
		return d.Name
	}
	return row.SoundID
}
