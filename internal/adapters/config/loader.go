// Package config provides the catalog loader for modkit.
package config

import (
	"context"
	"slices"
	"strings"

	"github.com/viant/afs"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/modkit-dev/modkit/internal/core/domain"
	"github.com/modkit-dev/modkit/internal/core/ports"
)

// DefaultPatchFile is used when a catalog does not name its overlay file.
const DefaultPatchFile = "edited_attributes.json"

// Loader implements ports.CatalogLoader over a YAML catalog file.
type Loader struct {
	fs  afs.Service
	log ports.Logger
}

var _ ports.CatalogLoader = (*Loader)(nil)

// NewLoader creates a Loader reading catalogs through the given afs service.
func NewLoader(fs afs.Service, log ports.Logger) *Loader {
	return &Loader{fs: fs, log: log}
}

// Load reads a catalog file and returns the validated domain catalog.
func (l *Loader) Load(ctx context.Context, url string) (*domain.Catalog, error) {
	data, err := l.fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read catalog file"), "url", url)
	}

	var dto catalogDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse catalog file"), "url", url)
	}

	layers := make(map[domain.Epoch][]string, len(dto.Layers))
	for name, roots := range dto.Layers {
		epoch, err := domain.ParseEpoch(name)
		if err != nil {
			return nil, zerr.With(err, "layer", name)
		}
		if epoch == domain.EpochEdited {
			return nil, zerr.With(zerr.New("the edited epoch has no layers"), "layer", name)
		}
		layers[epoch] = roots
	}

	// First pass: collect record names to verify references later.
	names := make(map[string]bool, len(dto.Records))
	for _, rec := range dto.Records {
		if rec.Name == "" {
			return nil, zerr.New("record without a name")
		}
		if names[rec.Name] {
			return nil, zerr.With(zerr.New("duplicate record"), "record", rec.Name)
		}
		names[rec.Name] = true
	}

	// Second pass: build specs and validate references and fields.
	records := make([]domain.RecordSpec, 0, len(dto.Records))
	for _, rec := range dto.Records {
		for _, ref := range rec.References {
			if !names[ref] {
				return nil, zerr.With(zerr.With(zerr.New("missing reference"),
					"record", rec.Name),
					"missing_reference", ref)
			}
			if ref == rec.Name {
				return nil, zerr.With(zerr.New("record references itself"), "record", rec.Name)
			}
		}

		fields := make([]domain.FieldSpec, 0, len(rec.Fields))
		for _, f := range rec.Fields {
			if f.Name == "" || f.File == "" || f.Path == "" || f.Attribute == "" {
				return nil, zerr.With(zerr.With(zerr.New("incomplete field"),
					"record", rec.Name),
					"field", f.Name)
			}
			fields = append(fields, domain.FieldSpec{
				Name:    f.Name,
				Display: displayOr(f.Display, f.Name),
				Key: domain.LocationKey{
					File:  f.File,
					Path:  f.Path,
					Field: f.Attribute,
				},
				ReadOnly: f.ReadOnly,
			})
		}

		records = append(records, domain.RecordSpec{
			Name:       rec.Name,
			Display:    displayOr(rec.Display, rec.Name),
			References: rec.References,
			Fields:     fields,
		})
	}
	slices.SortFunc(records, func(a, b domain.RecordSpec) int {
		return strings.Compare(a.Name, b.Name)
	})

	patchFile := dto.PatchFile
	if patchFile == "" {
		patchFile = DefaultPatchFile
	}

	l.log.Debug("catalog loaded", "url", url, "records", len(records))
	return &domain.Catalog{
		Layers:   layers,
		PatchURL: resolvePatchURL(url, patchFile),
		Records:  records,
	}, nil
}

func displayOr(display, fallback string) string {
	if display != "" {
		return display
	}
	return fallback
}

// resolvePatchURL anchors a relative patch file next to the catalog file.
func resolvePatchURL(catalogURL, patchFile string) string {
	if strings.Contains(patchFile, "://") {
		return patchFile
	}
	dir := catalogURL
	if i := strings.LastIndexByte(dir, '/'); i >= 0 {
		dir = dir[:i]
	}
	return dir + "/" + patchFile
}
