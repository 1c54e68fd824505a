package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Cache holds one compiled program per shader name. A failed compile is
// remembered so a broken material does not recompile every frame.
type Cache struct {
	programs map[string]*Program
	failed   map[string]error
}

// NewCache creates an empty program cache.
func NewCache() *Cache {
	return &Cache{
		programs: make(map[string]*Program),
		failed:   make(map[string]error),
	}
}

// Get returns the program registered as name, compiling vertex and fragment
// on first use.
func (c *Cache) Get(name, vertex, fragment string) (*Program, error) {
	if p, ok := c.programs[name]; ok {
		return p, nil
	}
	if err, ok := c.failed[name]; ok {
		return nil, err
	}

	id, err := CompileProgram(vertex, fragment)
	if err != nil {
		err = fmt.Errorf("program %q: %w", name, err)
		c.failed[name] = err
		return nil, err
	}
	p := &Program{ID: id, locations: make(map[string]int32)}
	c.programs[name] = p
	return p, nil
}

// Len returns the number of compiled programs.
func (c *Cache) Len() int {
	return len(c.programs)
}

// Destroy deletes every compiled program.
func (c *Cache) Destroy() {
	for name, p := range c.programs {
		gl.DeleteProgram(p.ID)
		delete(c.programs, name)
	}
	c.failed = make(map[string]error)
}
