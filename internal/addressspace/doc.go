// Package addressspace is the entry point of the information model. An
// AddressSpace owns the node graph, the type system and the value bindings
// of its variables; Namespaces are the factories through which every node
// is created.
//
// There is no global state. Callers create a space with New, register
// their namespaces, load the base model (see package builder) and drop the
// whole model at once with Dispose.
//
//	space := addressspace.New(ctx)
//	ns, _ := space.RegisterNamespace(ctx, "urn:example")
//	dt, _ := ns.AddEnumerationType(ctx, addressspace.EnumerationTypeSpec{
//		BrowseName:  "MachineState",
//		Enumeration: enumeration.Names{"RUNNING", "BLOCKED", "IDLE"},
//	})
//	v, _ := ns.AddVariable(ctx, addressspace.VariableSpec{
//		PropertyOf: ids.ServerVendorServerInfo,
//		DataType:   dt.ID(),
//		BrowseName: "RunningState",
//	})
//	_, _ = v.WriteEnumValue("IDLE")
package addressspace
