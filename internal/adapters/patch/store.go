// Package patch implements the durable overlay of user-authored field deltas.
package patch

import (
	"bytes"
	"context"
	"encoding/json"
	"iter"
	"sync"

	"github.com/viant/afs"
	"go.trai.ch/zerr"

	"github.com/modkit-dev/modkit/internal/core/domain"
	"github.com/modkit-dev/modkit/internal/core/ports"
)

// document is the persisted shape: one top-level key, string keys to string
// values. encoding/json writes map keys in lexicographic order, which keeps
// saved files diff-friendly.
type document struct {
	Patches map[string]string `json:"patches"`
}

// Store implements ports.PatchStore as a single JSON document.
type Store struct {
	fs  afs.Service
	log ports.Logger

	mu      sync.RWMutex
	patches map[string]string
}

var _ ports.PatchStore = (*Store)(nil)

// NewStore creates an empty overlay.
func NewStore(fs afs.Service, log ports.Logger) *Store {
	return &Store{
		fs:      fs,
		log:     log,
		patches: make(map[string]string),
	}
}

// Load merges the deltas persisted at url into the overlay. A missing file
// is a no-op; a parse or I/O error is returned without applying anything, so
// a corrupt file never silently discards user edits. Multiple loads from
// different sources merge, later keys overwriting earlier ones.
func (s *Store) Load(ctx context.Context, url string) error {
	ok, err := s.fs.Exists(ctx, url)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to probe patch file"), "url", url)
	}
	if !ok {
		return nil
	}

	data, err := s.fs.DownloadWithURL(ctx, url)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read patch file"), "url", url)
	}
	if len(data) == 0 {
		return nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to parse patch file"), "url", url)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range doc.Patches {
		s.patches[key] = value
	}
	return nil
}

// Save writes the whole overlay to url, overwriting the destination.
func (s *Store) Save(ctx context.Context, url string) error {
	s.mu.RLock()
	data, err := json.MarshalIndent(document{Patches: s.patches}, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return zerr.Wrap(err, "failed to marshal patch document")
	}

	if err := s.fs.Upload(ctx, url, 0o644, bytes.NewReader(data)); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write patch file"), "url", url)
	}
	return nil
}

// Sync resynchronizes the overlay from the live source nodes. Modified nodes
// are upserted, unmodified ones removed, and keys matching no live node are
// dropped with a warning. The result is an exact resync: afterwards the
// overlay holds precisely the modified nodes.
func (s *Store) Sync(nodes iter.Seq[*domain.SourceNode]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := make(map[string]bool)
	for n := range nodes {
		key := n.Key().String()
		live[key] = true
		if n.IsModified() {
			edited := n.Value(domain.EpochEdited)
			s.patches[key] = *edited
		} else {
			delete(s.patches, key)
		}
	}

	for key := range s.patches {
		if !live[key] {
			s.log.Warn("dropping stale patch, no live field matches", "key", key)
			delete(s.patches, key)
		}
	}
}

// Get returns the delta for a durable key, if present.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.patches[key]
	return v, ok
}

// Len returns the number of loaded deltas.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patches)
}

// Snapshot returns a copy of the overlay.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.patches))
	for k, v := range s.patches {
		out[k] = v
	}
	return out
}
