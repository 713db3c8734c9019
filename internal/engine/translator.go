package engine

import (
	"context"
	"fmt"

	"github.com/tesseract-hub/translation-api/internal/registry"
)

// Translator is the surface the orchestration layer needs from the MT
// engine. Implementations translate one text segment at a time; batch
// ordering is the caller's concern.
type Translator interface {
	// TranslateWithModel translates text with a specific model. src and
	// tgt are already validated against the model's supports.
	TranslateWithModel(ctx context.Context, model *registry.Model, src, tgt, text string) (string, error)

	// TranslateFromTo picks a serving model for the pair and translates.
	// Returns *PairError when no model serves src -> tgt.
	TranslateFromTo(ctx context.Context, src, tgt, text string) (string, error)
}

// PairError reports that no model can translate src -> tgt. The handler
// maps it to 404; any other engine failure is a server-side error.
type PairError struct {
	Src string
	Tgt string
}

func (e *PairError) Error() string {
	return fmt.Sprintf("no model translates from %s to %s", e.Src, e.Tgt)
}
