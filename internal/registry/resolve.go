package registry

import (
	"github.com/tesseract-hub/translation-api/internal/httperr"
)

// ResolvePair fills in the configured fallback pair for missing or empty
// src/tgt. No existence validation happens here: an invalid code only
// surfaces when the translation call itself fails.
func ResolvePair(requestedSrc, requestedTgt, defaultSrc, defaultTgt string) (src, tgt string) {
	src = requestedSrc
	if src == "" {
		src = defaultSrc
	}
	tgt = requestedTgt
	if tgt == "" {
		tgt = defaultTgt
	}
	return src, tgt
}

// ResolveModelDispatch resolves the effective (src, tgt) for a named
// model. An explicitly supplied but empty src or tgt counts as absent
// and is replaced by the model's default.
func (r *Registry) ResolveModelDispatch(modelName, requestedSrc, requestedTgt string) (*Model, string, string, error) {
	model, ok := r.Model(modelName)
	if !ok {
		return nil, "", "", httperr.NotFound("Unknown model %s", modelName)
	}

	src := requestedSrc
	if src == "" {
		src = model.Supports.DefaultSource()
	}
	if !model.Supports.HasSource(src) {
		return nil, "", "", httperr.NotFound("This model does not support translation from %s", src)
	}

	tgt := requestedTgt
	if tgt == "" {
		tgt = model.Supports.DefaultTarget(src)
	}
	if !model.Supports.HasPair(src, tgt) {
		return nil, "", "", httperr.NotFound("This model does not support translation from %s to %s", src, tgt)
	}

	return model, src, tgt, nil
}
