package vfs

import (
	"bytes"
	"context"

	"go.trai.ch/zerr"

	"github.com/modkit-dev/modkit/internal/core/domain"
)

// ApplyEdits writes modified attribute values into copies of the
// current-epoch files under destRoot, ready for further processing. Each
// touched file is rewritten once with all of its edits applied.
func (s *Source) ApplyEdits(ctx context.Context, edits []domain.FieldEdit, destRoot string) error {
	byFile := make(map[string][]domain.FieldEdit)
	var files []string
	for _, e := range edits {
		if _, seen := byFile[e.Key.File]; !seen {
			files = append(files, e.Key.File)
		}
		byFile[e.Key.File] = append(byFile[e.Key.File], e)
	}

	for _, file := range files {
		cached, err := s.Root(ctx, domain.EpochCurrent, file)
		if err != nil {
			return err
		}
		doc := cached.Clone()

		for _, e := range byFile[file] {
			matches, err := doc.Query(e.Key.Path)
			if err != nil {
				return zerr.With(err, "key", e.Key.String())
			}
			if len(matches) != 1 {
				return zerr.With(zerr.With(zerr.Wrap(domain.ErrFieldResolution, ""),
					"key", e.Key.String()),
					"match_count", len(matches))
			}
			matches[0].SetAttr(e.Key.Field, e.Value)
		}

		url := joinURL(destRoot, file)
		if err := s.fs.Upload(ctx, url, 0o644, bytes.NewReader(doc.Marshal())); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write edited file"), "url", url)
		}
	}
	return nil
}
