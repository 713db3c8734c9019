package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tesseract-hub/translation-api/internal/billing"
	"github.com/tesseract-hub/translation-api/internal/httperr"
	"github.com/tesseract-hub/translation-api/internal/translatable"
)

// ListModels returns the list of translation models.
// GET /api/v2/models/
func (h *TranslationHandler) ListModels(c *gin.Context) {
	models := h.registry.Models()
	items := make([]ModelResource, len(models))
	itemLinks := make([]Link, len(models))
	for i := range models {
		m := &models[i]
		items[i] = modelResource(m)
		itemLinks[i] = Link{Href: BasePath + "/models/" + m.Name, Name: m.Name, Title: m.Title}
	}

	c.JSON(http.StatusOK, gin.H{
		"_links": collectionLinks{
			Item: itemLinks,
			Self: Link{Href: BasePath + "/models/"},
		},
		"_embedded": gin.H{"item": items},
	})
}

// GetModel returns a single model descriptor.
// GET /api/v2/models/{model}
func (h *TranslationHandler) GetModel(c *gin.Context) {
	name := c.Param("model")
	m, ok := h.registry.Model(name)
	if !ok {
		httperr.Respond(c, httperr.NotFound("Model %s not found", name))
		return
	}
	c.JSON(http.StatusOK, modelResource(m))
}

// TranslateModel translates input with a named model.
// POST /api/v2/models/{model}
func (h *TranslationHandler) TranslateModel(c *gin.Context) {
	rc := billing.StartRequest()

	t, err := h.textFromRequest(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.processModel(c, rc, t, c.Query("src"), c.Query("tgt"), "")
}

// TranslateModelFile translates an uploaded document with a named model.
// POST /api/v2/models/{model}/file
func (h *TranslationHandler) TranslateModelFile(c *gin.Context) {
	rc := billing.StartRequest()

	t, err := h.fileFromRequest(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.processModel(c, rc, t, c.Query("src"), c.Query("tgt"), "")
}

// TranslateModelBatch translates an ordered batch of texts with a named
// model. The response is always the {"translations": [...]} JSON shape.
// POST /api/v2/models/{model}/batch
func (h *TranslationHandler) TranslateModelBatch(c *gin.Context) {
	rc := billing.StartRequest()

	batch, req, err := batchFromRequest(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.processModel(c, rc, batch, firstNonEmpty(c.Query("src"), req.Src), firstNonEmpty(c.Query("tgt"), req.Tgt), translatable.MediaJSON)
}

// processModel is the shared tail of every by-model endpoint. Unlike
// the language-pair path, src and tgt default from the model itself,
// and the pair must be one the model declares.
func (h *TranslationHandler) processModel(c *gin.Context, rc *billing.RequestContext, t translatable.Translatable, requestedSrc, requestedTgt string, fixedMedia translatable.MediaType) {
	meta := billing.MetaFromRequest(c)

	if requestedSrc == "" {
		requestedSrc = c.PostForm("src")
	}
	if requestedTgt == "" {
		requestedTgt = c.PostForm("tgt")
	}

	name := c.Param("model")
	if _, ok := h.registry.Model(name); !ok {
		httperr.Respond(c, httperr.NotFound("Model %s not found", name))
		return
	}

	if err := h.guard.Check(t, meta.IgnoreSizeLimit); err != nil {
		httperr.Respond(c, err)
		return
	}

	media, err := selectMedia(c, t, fixedMedia)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	model, src, tgt, err := h.registry.ResolveModelDispatch(name, requestedSrc, requestedTgt)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	defer h.recorder.Record(c.Request.Context(), rc, src, tgt, t, meta)

	if err := t.TranslateWithModel(c.Request.Context(), h.translator, model, src, tgt); err != nil {
		h.logger.WithError(err).WithField("model", model.Name).Error("Translation failed")
		httperr.Respond(c, err)
		return
	}

	extra := fmt.Sprintf("src=%s;tgt=%s;model=%s", src, tgt, model.Name)
	writeTranslated(c, t, media, rc.Headers(extra), billing.VariantHeaders(t))
}
