// Package schema holds the per-stream registry of groups and items that a
// stream declares inline as it goes.
//
// Groups and items live in an arena owned by the Registry and are addressed
// by integer handles. The zero handle never refers to anything, so a zero
// GroupID doubles as "no group".
package schema

import "math"

// MaxNum is the largest item number that fits a tag.
const MaxNum = 1<<29 - 1

// GroupID is a handle to a group in a Registry.
type GroupID int32

// ItemID is a handle to an item in a Registry. It is not the item's wire
// number; see Item.Num.
type ItemID int32

// NoGroup is the zero GroupID.
const NoGroup GroupID = 0

// Group describes a named namespace of items.
type Group struct {
	Name string
	Kind Type
}

// Item describes a field or an enum value.
type Item struct {
	Name  string
	Num   uint32
	Type  Type
	Owner GroupID
	Isa   GroupID
}

type groupEntry struct {
	Group
	last   uint32
	byName map[string]ItemID
	byNum  []ItemID
}

// Registry is the schema of one stream. The zero value is not usable; call
// New.
type Registry struct {
	groups []groupEntry
	items  []Item
	byName map[string]GroupID
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]GroupID)}
}

// Reset drops every group and item.
func (r *Registry) Reset() {
	r.groups = nil
	r.items = nil
	r.byName = make(map[string]GroupID)
}

// Root returns the first group ever created, or NoGroup.
func (r *Registry) Root() GroupID {
	if len(r.groups) == 0 {
		return NoGroup
	}
	return 1
}

// NumGroups returns the number of groups.
func (r *Registry) NumGroups() int { return len(r.groups) }

// NumItems returns the number of items across all groups.
func (r *Registry) NumItems() int { return len(r.items) }

// Group returns the group g. It panics on a handle not issued by r.
func (r *Registry) Group(g GroupID) Group { return r.groups[g-1].Group }

// Item returns the item it. It panics on a handle not issued by r.
func (r *Registry) Item(it ItemID) Item { return r.items[it-1] }

// GroupName returns the name of g, or "" for NoGroup.
func (r *Registry) GroupName(g GroupID) string {
	if g == NoGroup {
		return ""
	}
	return r.groups[g-1].Name
}

// LookupGroup finds a group by name.
func (r *Registry) LookupGroup(name string) (GroupID, bool) {
	g, ok := r.byName[name]
	return g, ok
}

// LookupItem finds an item of g by name.
func (r *Registry) LookupItem(g GroupID, name string) (ItemID, bool) {
	it, ok := r.groups[g-1].byName[name]
	return it, ok
}

// ItemByNum resolves an item number within g.
func (r *Registry) ItemByNum(g GroupID, num uint32) (ItemID, error) {
	e := &r.groups[g-1]
	if num == 0 || uint64(num) > uint64(len(e.byNum)) {
		return 0, errorf(Unresolved, e.Name, "", "no item with id %d", num)
	}
	return e.byNum[num-1], nil
}

// EnsureGroup returns the group called name, creating it if needed. created
// reports whether it was created by this call. An existing group of another
// kind is a Conflict.
func (r *Registry) EnsureGroup(name string, kind Type) (g GroupID, created bool, err error) {
	if !kind.IsGroupKind() {
		return 0, false, errorf(Invalid, name, "", "group kind %q is not struct or enum", byte(kind))
	}
	if g, ok := r.byName[name]; ok {
		if have := r.groups[g-1].Kind; have != kind {
			return 0, false, errorf(Conflict, name, "", "declared as %v, used as %v", have, kind)
		}
		return g, false, nil
	}
	if len(r.groups) >= math.MaxInt32 {
		return 0, false, errorf(Invalid, name, "", "too many groups")
	}
	r.groups = append(r.groups, groupEntry{
		Group:  Group{Name: name, Kind: kind},
		byName: make(map[string]ItemID),
	})
	g = GroupID(len(r.groups))
	r.byName[name] = g
	return g, true, nil
}

// EnsureItem returns the item called name in group g, creating it with the
// next free number if needed. An existing item with a different type or isa
// is a Conflict. Struct and enum items need an isa group of the matching
// kind.
func (r *Registry) EnsureItem(g GroupID, name string, typ Type, isa GroupID) (it ItemID, created bool, err error) {
	e := &r.groups[g-1]
	if it, ok := e.byName[name]; ok {
		have := r.items[it-1]
		if have.Type != typ {
			return 0, false, errorf(Conflict, e.Name, name, "declared as %v, used as %v", have.Type, typ)
		}
		if have.Isa != isa {
			return 0, false, errorf(Conflict, e.Name, name, "declared with isa %q, used with isa %q",
				r.GroupName(have.Isa), r.GroupName(isa))
		}
		return it, false, nil
	}
	if err := r.checkItem(e.Name, name, typ, isa); err != nil {
		return 0, false, err
	}
	if e.last >= MaxNum {
		return 0, false, errorf(Invalid, e.Name, name, "item ids exhausted")
	}
	e.last++
	r.items = append(r.items, Item{Name: name, Num: e.last, Type: typ, Owner: g, Isa: isa})
	it = ItemID(len(r.items))
	e.byName[name] = it
	e.byNum = append(e.byNum, it)
	return it, true, nil
}

func (r *Registry) checkItem(group, name string, typ Type, isa GroupID) error {
	if !typ.Valid() {
		return errorf(Invalid, group, name, "unknown value type %q", byte(typ))
	}
	if typ.IsGroupKind() {
		if isa == NoGroup {
			return errorf(Invalid, group, name, "%v item without isa group", typ)
		}
		if k := r.groups[isa-1].Kind; k != typ {
			return errorf(Conflict, group, name, "%v item refers to %v group %q", typ, k, r.GroupName(isa))
		}
	}
	return nil
}

// DeclareGroup replays a group declaration read from a stream. Declaring an
// existing group again with the same kind is accepted.
func (r *Registry) DeclareGroup(name string, kind Type) (GroupID, error) {
	g, _, err := r.EnsureGroup(name, kind)
	return g, err
}

// DeclareItem replays an item declaration without isa read from a stream.
// Group names are resolved against earlier declarations. Unlike EnsureItem, a
// second declaration of the same item is a Conflict: it would shift every
// later id of the group.
func (r *Registry) DeclareItem(group, name string, typ Type) (ItemID, error) {
	return r.declareItem(group, name, typ, NoGroup)
}

// DeclareItemIsa is DeclareItem for a declaration carrying an isa group name.
// The empty string is a valid group name here.
func (r *Registry) DeclareItemIsa(group, name string, typ Type, isa string) (ItemID, error) {
	ig, ok := r.byName[isa]
	if !ok {
		return 0, errorf(Unresolved, group, name, "isa group %q not declared", isa)
	}
	return r.declareItem(group, name, typ, ig)
}

func (r *Registry) declareItem(group, name string, typ Type, ig GroupID) (ItemID, error) {
	g, ok := r.byName[group]
	if !ok {
		return 0, errorf(Unresolved, group, name, "owning group not declared")
	}
	if _, ok := r.groups[g-1].byName[name]; ok {
		return 0, errorf(Conflict, group, name, "declared twice")
	}
	it, _, err := r.EnsureItem(g, name, typ, ig)
	return it, err
}
