package addressspace

import (
	"github.com/specialistvlad/addressspace/internal/binding"
	"github.com/specialistvlad/addressspace/internal/nodeid"
)

// Variable is the handle of a variable node. Value access is provided by
// the embedded binding.
type Variable struct {
	*binding.Binding
}

// ID returns the node id of the variable.
func (v *Variable) ID() nodeid.NodeID { return v.Node().ID() }

// BrowseName returns the browse name of the variable.
func (v *Variable) BrowseName() nodeid.QualifiedName { return v.Node().BrowseName() }
