package enumeration

// Spec is the specification a Definition is built from. It is implemented
// only by Names and Values.
type Spec interface {
	members() []Member
	sequential() bool
}

// Names lists member names; values are assigned sequentially from 0.
type Names []string

func (n Names) members() []Member {
	out := make([]Member, len(n))
	for i, name := range n {
		out[i] = Member{Name: name, Value: int64(i)}
	}
	return out
}

func (Names) sequential() bool { return true }

// NamedValue is one explicitly valued member.
type NamedValue struct {
	DisplayName string
	Value       int64
	Description string
}

// Values lists members with explicit, possibly sparse, values.
type Values []NamedValue

func (v Values) members() []Member {
	out := make([]Member, len(v))
	for i, nv := range v {
		out[i] = Member{Name: nv.DisplayName, Value: nv.Value, Description: nv.Description}
	}
	return out
}

func (Values) sequential() bool { return false }
