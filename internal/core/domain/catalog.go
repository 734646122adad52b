package domain

// Catalog is the declarative side of the toolkit: which records exist, which
// fields each record exposes and where they live, plus the layered roots the
// loader reads from. It is pure configuration; the graph is built from it.
type Catalog struct {
	// Layers maps each epoch to its ordered list of root URLs. A virtual
	// file resolves to the last layer that carries it.
	Layers map[Epoch][]string
	// PatchURL is where the edited-attributes overlay is persisted.
	PatchURL string
	// Records lists the record tables, sorted by name.
	Records []RecordSpec
}

// RecordSpec declares one object and its fields.
type RecordSpec struct {
	Name       string
	Display    string
	References []string
	Fields     []FieldSpec
}

// FieldSpec declares one source field of a record.
type FieldSpec struct {
	Name     string
	Display  string
	Key      LocationKey
	ReadOnly bool
}

// Record returns the record with the given name, or nil.
func (c *Catalog) Record(name string) *RecordSpec {
	for i := range c.Records {
		if c.Records[i].Name == name {
			return &c.Records[i]
		}
	}
	return nil
}
