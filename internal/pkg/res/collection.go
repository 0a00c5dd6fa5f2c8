package res

import "fmt"

// Collection is an insertion ordered, key indexed set of technologies.
// Iteration over Technologies always follows first-add order, which keeps
// build output reproducible run to run.
type Collection struct {
	order []Key
	byKey map[Key]*Technology
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{
		order: []Key{},
		byKey: make(map[Key]*Technology),
	}
}

// Add inserts a technology. Inserting a second technology with the same Key
// is an error; slots are allocated once and only ever mutated in place.
func (c *Collection) Add(t *Technology) error {
	k := t.Key()
	if _, exists := c.byKey[k]; exists {
		return fmt.Errorf("res: technology %s %s already in collection", k.Region, k.Code)
	}
	c.order = append(c.order, k)
	c.byKey[k] = t
	return nil
}

// Get locates a technology by Key.
func (c *Collection) Get(k Key) (*Technology, bool) {
	t, ok := c.byKey[k]
	return t, ok
}

// Remove drops a technology by Key, preserving the order of the rest.
func (c *Collection) Remove(k Key) bool {
	if _, ok := c.byKey[k]; !ok {
		return false
	}
	delete(c.byKey, k)
	for i, o := range c.order {
		if o == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Technologies returns all members in first-add order.
func (c *Collection) Technologies() []*Technology {
	techs := make([]*Technology, 0, len(c.order))
	for _, k := range c.order {
		techs = append(techs, c.byKey[k])
	}
	return techs
}

// Len returns the member count.
func (c *Collection) Len() int {
	return len(c.byKey)
}
