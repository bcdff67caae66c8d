package schema

// GroupInfo is a read-only copy of a group and its items in id order.
type GroupInfo struct {
	Name  string
	Kind  Type
	Items []ItemInfo
}

// ItemInfo is a read-only copy of an item. Isa is empty when the item has
// no isa group.
type ItemInfo struct {
	Name string
	Num  uint32
	Type Type
	Isa  string
}

// Groups returns a snapshot of the registry in declaration order.
func (r *Registry) Groups() []GroupInfo {
	out := make([]GroupInfo, 0, len(r.groups))
	for _, e := range r.groups {
		gi := GroupInfo{Name: e.Name, Kind: e.Kind, Items: make([]ItemInfo, 0, len(e.byNum))}
		for _, it := range e.byNum {
			item := r.items[it-1]
			gi.Items = append(gi.Items, ItemInfo{
				Name: item.Name,
				Num:  item.Num,
				Type: item.Type,
				Isa:  r.GroupName(item.Isa),
			})
		}
		out = append(out, gi)
	}
	return out
}

// Values returns the names of an enum group's values, indexed by ordinal
// minus one.
func (g GroupInfo) Values() []string {
	if g.Kind != Enum {
		return nil
	}
	names := make([]string, len(g.Items))
	for i, it := range g.Items {
		names[i] = it.Name
	}
	return names
}
