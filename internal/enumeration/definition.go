package enumeration

import (
	"math"

	"github.com/specialistvlad/addressspace/internal/modelerr"
)

// Member is one name/value pair of an enumeration.
type Member struct {
	Name        string
	Value       int64
	Description string
}

// Definition is an immutable enumeration. It is safe for concurrent use.
type Definition struct {
	members    []Member
	byName     map[string]int
	byValue    map[int64]int
	sequential bool
}

// New validates spec and builds a Definition. Duplicate names or values
// fail with modelerr.ErrDuplicateDefinition. An empty enumeration, an empty
// name, or a value outside [0, MaxInt32] fails with
// modelerr.ErrInvalidDefinition.
func New(spec Spec) (*Definition, error) {
	const op = "enumeration.New"
	if spec == nil {
		return nil, modelerr.New(op, modelerr.ErrInvalidDefinition, "no enumeration specification")
	}

	members := spec.members()
	if len(members) == 0 {
		return nil, modelerr.New(op, modelerr.ErrInvalidDefinition, "enumeration has no members")
	}

	d := &Definition{
		members:    members,
		byName:     make(map[string]int, len(members)),
		byValue:    make(map[int64]int, len(members)),
		sequential: spec.sequential(),
	}
	for i, m := range members {
		if m.Name == "" {
			return nil, modelerr.New(op, modelerr.ErrInvalidDefinition, "member %d has an empty name", i)
		}
		if m.Value < 0 || m.Value > math.MaxInt32 {
			return nil, modelerr.New(op, modelerr.ErrInvalidDefinition, "member %q has value %d outside [0, %d]", m.Name, m.Value, math.MaxInt32)
		}
		if prev, ok := d.byName[m.Name]; ok {
			return nil, modelerr.New(op, modelerr.ErrDuplicateDefinition, "name %q used by members %d and %d", m.Name, prev, i)
		}
		if prev, ok := d.byValue[m.Value]; ok {
			return nil, modelerr.New(op, modelerr.ErrDuplicateDefinition, "value %d used by %q and %q", m.Value, members[prev].Name, m.Name)
		}
		d.byName[m.Name] = i
		d.byValue[m.Value] = i
	}
	return d, nil
}

// Fields returns the members in definition order.
func (d *Definition) Fields() []Member {
	out := make([]Member, len(d.members))
	copy(out, d.members)
	return out
}

// Len returns the number of members.
func (d *Definition) Len() int {
	return len(d.members)
}

// Sequential reports whether the definition was built from Names, which
// means values run 0..Len()-1 in order.
func (d *Definition) Sequential() bool {
	return d.sequential
}

// LookupByName returns the value of the member called name.
func (d *Definition) LookupByName(name string) (int64, error) {
	i, ok := d.byName[name]
	if !ok {
		return 0, modelerr.New("LookupByName", modelerr.ErrNotFound, "no member named %q", name)
	}
	return d.members[i].Value, nil
}

// LookupByValue returns the name of the member with the given value.
func (d *Definition) LookupByValue(value int64) (string, error) {
	i, ok := d.byValue[value]
	if !ok {
		return "", modelerr.New("LookupByValue", modelerr.ErrNotFound, "no member with value %d", value)
	}
	return d.members[i].Name, nil
}

// Member returns the full member with the given value.
func (d *Definition) Member(value int64) (Member, bool) {
	i, ok := d.byValue[value]
	if !ok {
		return Member{}, false
	}
	return d.members[i], true
}
