package ssds

import "github.com/dadrian/ssds/schema"

// stack is the open-group stack: the struct items whose start record has
// been seen but whose end record has not.
type stack []schema.ItemID

func (s *stack) push(it schema.ItemID) { *s = append(*s, it) }

func (s *stack) pop() (schema.ItemID, bool) {
	n := len(*s)
	if n == 0 {
		return 0, false
	}
	it := (*s)[n-1]
	*s = (*s)[:n-1]
	return it, true
}

func (s stack) top() (schema.ItemID, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1], true
}

func (s stack) depth() int { return len(s) }

// namespace is the group that field ids resolve in: the isa group of the
// innermost open item, else the root group.
func (s stack) namespace(reg *schema.Registry) schema.GroupID {
	if it, ok := s.top(); ok {
		return reg.Item(it).Isa
	}
	return reg.Root()
}
