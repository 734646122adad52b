package domain

// ForceDependencies rewires a derived node's dependency list after
// construction. The public API cannot produce a dependency cycle, so cycle
// detection tests need this hook.
func ForceDependencies(d *DerivedNode, deps []Node) {
	d.depList = deps
}
