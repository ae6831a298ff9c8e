// Package yaml provides the YAML implementation of config.Loader, for
// nodesets generated by tools that do not speak HCL.
//
//	namespaces:
//	  - uri: urn:example:machines
//	nodes:
//	  - kind: enumeration
//	    name: MachineState
//	    fields:
//	      - name: RUNNING
//	      - name: BLOCKED
//	  - kind: variable
//	    name: RunningState
//	    property_of: i=2295
//	    data_type: MachineState
//	    value: BLOCKED
//
// The same namespace defaulting rules as for HCL apply.
package yaml
