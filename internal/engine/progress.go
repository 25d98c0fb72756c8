package engine

import (
	"context"
	"errors"
)

// ErrCorruptProgress marks persisted progress that exists but cannot be parsed.
var ErrCorruptProgress = errors.New("corrupt progress data")

// Progress maps region identity to level. Missing identities are LevelNever.
type Progress map[string]Level

func (p Progress) Get(id string) Level { return p[id] }

// With returns a copy of p with id set to l. Setting LevelNever removes the
// entry, since absence and zero are equivalent.
func (p Progress) With(id string, l Level) Progress {
	out := make(Progress, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	if l == LevelNever {
		delete(out, id)
	} else {
		out[id] = l
	}
	return out
}

// Equal compares two progress maps treating explicit zeros as absent.
func (p Progress) Equal(o Progress) bool {
	for k, v := range p {
		if o[k] != v {
			return false
		}
	}
	for k, v := range o {
		if p[k] != v {
			return false
		}
	}
	return true
}

// ProgressStore loads and saves progress. Load returns an empty mapping when
// nothing has been persisted yet and an error wrapping ErrCorruptProgress when
// persisted data cannot be parsed.
type ProgressStore interface {
	Load(ctx context.Context) (Progress, error)
	Save(ctx context.Context, p Progress) error
}

// Exporter writes an export in the given format and returns the written path.
type Exporter interface {
	Export(ctx context.Context, f Format, c *Catalog, p Progress, s Stats) (string, error)
}
