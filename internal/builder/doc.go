/*
Package builder applies a nodeset model (defined in the 'config' package) to
an address space. It is the bridge between the loaders and the
'addressspace' factories.

Applying a model is a multi-phase process:

 1. Namespace Registration: every namespace the model declares is registered
    unless the space already knows its URI.

 2. Dependency Linking: each declaration depends on the declarations it
    names (its supertype, parent, data type and type definition) and on the
    reference types its creation uses (HasSubtype, HasProperty, ...). These
    dependencies form a graph in the generic `dag` package, which yields an
    order where every node is created after the nodes it refers to. A cycle
    among declarations is reported before anything is created.

 3. Creation: declarations are handed to the namespace factories in that
    order. Initial values are converted from cty to variants; enumerated
    variables accept a member name or value and are written through the
    validated path.

 4. Extra References and Validation: `reference` declarations are added once
    every node exists, and the subtype hierarchy of the finished space is
    checked to be acyclic.

An error leaves the nodes created so far in place; callers normally discard
the space.
*/
package builder
