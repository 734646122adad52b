package vfs

import (
	"context"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/viant/afs"
	"go.trai.ch/zerr"

	"github.com/modkit-dev/modkit/internal/core/domain"
	"github.com/modkit-dev/modkit/internal/core/ports"
)

// Source implements ports.FieldSource over per-epoch ordered layer roots. A
// virtual file resolves to the last layer that carries it, mirroring how
// extensions override base game files.
type Source struct {
	fs     afs.Service
	layers map[domain.Epoch][]string
	log    ports.Logger

	mu   sync.Mutex
	docs map[docKey]*cachedDoc
}

type docKey struct {
	epoch domain.Epoch
	file  string
}

type cachedDoc struct {
	sum uint64
	doc *Document
}

var _ ports.FieldSource = (*Source)(nil)

// NewSource creates a Source over the given layer roots.
func NewSource(fs afs.Service, layers map[domain.Epoch][]string, log ports.Logger) *Source {
	return &Source{
		fs:     fs,
		layers: layers,
		log:    log,
		docs:   make(map[docKey]*cachedDoc),
	}
}

// Factory implements ports.SourceFactory.
type Factory struct {
	fs  afs.Service
	log ports.Logger
}

// NewFactory creates a Factory sharing one afs service across sources.
func NewFactory(fs afs.Service, log ports.Logger) *Factory {
	return &Factory{fs: fs, log: log}
}

// Open implements ports.SourceFactory.
func (f *Factory) Open(layers map[domain.Epoch][]string) ports.FieldSource {
	return NewSource(f.fs, layers, f.log)
}

// Root returns the parsed document for a virtual file at the given epoch.
// Parsed documents are cached; the cache entry is reused as long as the
// resolved bytes hash identically, so a re-read of an unchanged layer file
// costs no reparse.
func (s *Source) Root(ctx context.Context, epoch domain.Epoch, file string) (*Document, error) {
	data, err := s.resolve(ctx, epoch, file)
	if err != nil {
		return nil, err
	}

	key := docKey{epoch: epoch, file: file}
	sum := xxhash.Sum64(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.docs[key]; ok && cached.sum == sum {
		return cached.doc, nil
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, zerr.With(zerr.With(err, "file", file), "epoch", string(epoch))
	}
	s.docs[key] = &cachedDoc{sum: sum, doc: doc}
	return doc, nil
}

// resolve walks the epoch's layers last-to-first and downloads the first hit.
func (s *Source) resolve(ctx context.Context, epoch domain.Epoch, file string) ([]byte, error) {
	roots := s.layers[epoch]
	for i := len(roots) - 1; i >= 0; i-- {
		url := joinURL(roots[i], file)
		ok, err := s.fs.Exists(ctx, url)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to probe layer"), "url", url)
		}
		if !ok {
			continue
		}
		data, err := s.fs.DownloadWithURL(ctx, url)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read layer file"), "url", url)
		}
		return data, nil
	}
	return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrFileNotFound, ""), "file", file), "epoch", string(epoch))
}

// FieldValue implements ports.FieldSource. Anything other than exactly one
// matching element is a construction invariant violation and fails hard.
func (s *Source) FieldValue(ctx context.Context, epoch domain.Epoch, key domain.LocationKey) (*string, error) {
	doc, err := s.Root(ctx, epoch, key.File)
	if err != nil {
		return nil, err
	}

	matches, err := doc.Query(key.Path)
	if err != nil {
		return nil, zerr.With(err, "key", key.String())
	}
	if len(matches) != 1 {
		return nil, zerr.With(zerr.With(zerr.With(zerr.Wrap(domain.ErrFieldResolution, ""),
			"key", key.String()),
			"epoch", string(epoch)),
			"match_count", len(matches))
	}
	return matches[0].Attr(key.Field), nil
}

func joinURL(root, file string) string {
	return strings.TrimSuffix(root, "/") + "/" + strings.TrimPrefix(file, "/")
}
