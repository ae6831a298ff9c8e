// Package config defines the format-agnostic nodeset model: the namespaces,
// node declarations and extra references that a loader reads from files,
// along with the Loader interface that format packages implement.
//
// The `config.Model` is the single input of the `builder` package. Concrete
// loaders for HCL and YAML live in the `hcl` and `yaml` packages.
package config
