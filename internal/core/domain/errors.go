package domain

import "go.trai.ch/zerr"

var (
	// ErrObjectAlreadyExists is returned when registering an object under a name that is already taken.
	ErrObjectAlreadyExists = zerr.New("object already exists")

	// ErrObjectNotFound is returned when a named object is not registered.
	ErrObjectNotFound = zerr.New("object not found")

	// ErrItemNotFound is returned when a node name resolves neither locally nor through references.
	ErrItemNotFound = zerr.New("item not found")

	// ErrReferenceCycle is returned by the asymmetric reference guard: B cannot
	// reference A when A already references B.
	ErrReferenceCycle = zerr.New("reference cycle")

	// ErrDependencyCycle is returned when derived-node dependencies form a cycle.
	ErrDependencyCycle = zerr.New("dependency cycle")

	// ErrUnknownEpoch is returned when a string does not name one of the four epochs.
	ErrUnknownEpoch = zerr.New("unknown epoch")

	// ErrEpochImmutable is returned when setting a value on a snapshot epoch.
	// Only the edited epoch accepts writes.
	ErrEpochImmutable = zerr.New("epoch is immutable")

	// ErrNodeReadOnly is returned when setting a value on a read-only node.
	ErrNodeReadOnly = zerr.New("node is read-only")

	// ErrNotEditable is returned when an edit targets a node that is not a source node.
	ErrNotEditable = zerr.New("node is not editable")

	// ErrNilCompute is returned when a derived node is built without a compute function.
	ErrNilCompute = zerr.New("compute function is nil")

	// ErrMalformedKey is returned when a durable key string does not split into its three components.
	ErrMalformedKey = zerr.New("malformed location key")

	// ErrFieldResolution is returned when a path expression resolves to anything
	// other than exactly one element during source node construction.
	ErrFieldResolution = zerr.New("path expression must match exactly one element")

	// ErrFileNotFound is returned when no layer of an epoch carries the
	// requested virtual file.
	ErrFileNotFound = zerr.New("virtual file not found in any layer")
)
