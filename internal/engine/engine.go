package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/translation-api/internal/registry"
)

// Engine implements Translator against the MT backend, with an optional
// Redis cache in front and the registry deciding which model serves a
// bare language pair.
type Engine struct {
	registry *registry.Registry
	backend  *BackendClient
	cache    *TranslationCache
	logger   *logrus.Entry
}

// New creates an Engine. cache may be nil.
func New(reg *registry.Registry, backend *BackendClient, cache *TranslationCache, logger *logrus.Entry) *Engine {
	return &Engine{
		registry: reg,
		backend:  backend,
		cache:    cache,
		logger:   logger,
	}
}

func (e *Engine) TranslateWithModel(ctx context.Context, model *registry.Model, src, tgt, text string) (string, error) {
	if e.cache != nil {
		if out, ok := e.cache.Get(ctx, model.Name, src, tgt, text); ok {
			return out, nil
		}
	}
	out, err := e.backend.Translate(ctx, model.Name, src, tgt, text)
	if err != nil {
		e.logger.WithError(err).WithFields(logrus.Fields{
			"model": model.Name,
			"src":   src,
			"tgt":   tgt,
		}).Error("Backend translation failed")
		return "", err
	}
	if e.cache != nil {
		e.cache.Set(ctx, model.Name, src, tgt, text, out)
	}
	return out, nil
}

func (e *Engine) TranslateFromTo(ctx context.Context, src, tgt, text string) (string, error) {
	model, ok := e.registry.ModelForPair(src, tgt)
	if !ok {
		return "", &PairError{Src: src, Tgt: tgt}
	}
	return e.TranslateWithModel(ctx, model, src, tgt, text)
}
