// Package hcl provides the HCL implementation of config.Loader. It parses
// nodeset files with hashicorp/hcl, decodes their blocks with gohcl and
// translates them into the format-agnostic config.Model.
//
// A nodeset file looks like this:
//
//	namespace "urn:example:machines" {}
//
//	enumeration "MachineState" {
//	  field "RUNNING" {}
//	  field "BLOCKED" {}
//	}
//
//	variable "RunningState" {
//	  property_of = "i=2295"
//	  data_type   = "MachineState"
//	  value       = "BLOCKED"
//	}
//
// Declarations without a namespace attribute belong to the file's
// default_namespace, or to the first namespace the file declares, or to
// namespace 0.
package hcl
