package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tesseract-hub/translation-api/internal/billing"
	"github.com/tesseract-hub/translation-api/internal/engine"
	"github.com/tesseract-hub/translation-api/internal/httperr"
	"github.com/tesseract-hub/translation-api/internal/registry"
	"github.com/tesseract-hub/translation-api/internal/translatable"
)

// GetLanguages returns the list of available languages.
// GET /api/v2/languages/
func (h *TranslationHandler) GetLanguages(c *gin.Context) {
	langs := h.registry.Languages()
	items := make([]LanguageResource, len(langs))
	itemLinks := make([]Link, len(langs))
	for i, l := range langs {
		items[i] = languageResource(l)
		itemLinks[i] = Link{Href: BasePath + "/languages/" + l.Code, Name: l.Code, Title: l.Title}
	}

	translate := pairTranslateLink()
	c.JSON(http.StatusOK, gin.H{
		"_links": collectionLinks{
			Item:      itemLinks,
			Self:      Link{Href: BasePath + "/languages/"},
			Translate: &translate,
		},
		"_embedded": gin.H{"item": items},
	})
}

// GetLanguage returns a single language resource.
// GET /api/v2/languages/{code} (code length exactly 2)
func (h *TranslationHandler) GetLanguage(c *gin.Context) {
	code := c.Param("code")
	if len(code) != 2 {
		httperr.Respond(c, httperr.NotFound("Language %s not found", code))
		return
	}
	lang, ok := h.registry.Language(code)
	if !ok {
		httperr.Respond(c, httperr.NotFound("Language %s not found", code))
		return
	}
	c.JSON(http.StatusOK, languageResource(lang))
}

// TranslatePair translates input from src lang to tgt lang, defaulting
// the pair when the request leaves it out.
// POST /api/v2/languages/
func (h *TranslationHandler) TranslatePair(c *gin.Context) {
	rc := billing.StartRequest()

	t, err := h.textFromRequest(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.processPair(c, rc, t, "")
}

// TranslatePairFile translates an uploaded document from src lang to
// tgt lang.
// POST /api/v2/languages/file
func (h *TranslationHandler) TranslatePairFile(c *gin.Context) {
	rc := billing.StartRequest()

	t, err := h.fileFromRequest(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.processPair(c, rc, t, "")
}

// TranslatePairBatch translates an ordered batch of texts. The response
// is always the {"translations": [...]} JSON shape.
// POST /api/v2/languages/batch, body {"input_texts": [...]}
func (h *TranslationHandler) TranslatePairBatch(c *gin.Context) {
	rc := billing.StartRequest()

	batch, req, err := batchFromRequest(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.processPairResolved(c, rc, batch, firstNonEmpty(c.Query("src"), req.Src), firstNonEmpty(c.Query("tgt"), req.Tgt), translatable.MediaJSON)
}

func (h *TranslationHandler) processPair(c *gin.Context, rc *billing.RequestContext, t translatable.Translatable, fixedMedia translatable.MediaType) {
	h.processPairResolved(c, rc, t, c.Query("src"), c.Query("tgt"), fixedMedia)
}

// processPairResolved is the shared tail of every by-language-pair
// endpoint: size gate, dispatch resolution, translation, audit,
// response. fixedMedia pins the response encoding; when empty it is
// negotiated from Accept.
func (h *TranslationHandler) processPairResolved(c *gin.Context, rc *billing.RequestContext, t translatable.Translatable, requestedSrc, requestedTgt string, fixedMedia translatable.MediaType) {
	meta := billing.MetaFromRequest(c)

	if requestedSrc == "" {
		requestedSrc = c.PostForm("src")
	}
	if requestedTgt == "" {
		requestedTgt = c.PostForm("tgt")
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

	src, tgt := registry.ResolvePair(requestedSrc, requestedTgt, h.config.DefaultSourceLang, h.config.DefaultTargetLang)

	// input validation passed: from here the access record is owed no
	// matter how translation ends
	defer h.recorder.Record(c.Request.Context(), rc, src, tgt, t, meta)

	if err := t.TranslateFromTo(c.Request.Context(), h.translator, src, tgt); err != nil {
		var pairErr *engine.PairError
		if errors.As(err, &pairErr) {
			httperr.Respond(c, httperr.NotFound("Can't translate from %s to %s", src, tgt))
			return
		}
		h.logger.WithError(err).Error("Translation failed")
		httperr.Respond(c, err)
		return
	}

	extra := fmt.Sprintf("src=%s;tgt=%s", src, tgt)
	writeTranslated(c, t, media, rc.Headers(extra), billing.VariantHeaders(t))
}

type batchRequest struct {
	InputTexts []string `json:"input_texts"`
	Src        string   `json:"src"`
	Tgt        string   `json:"tgt"`
}

func batchFromRequest(c *gin.Context) (*translatable.TextBatch, *batchRequest, error) {
	if c.ContentType() != "application/json" {
		return nil, nil, httperr.UnsupportedMediaType("Batch translation expects an application/json request body")
	}
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, nil, httperr.BadRequest("Invalid batch payload: input_texts must be a list of strings")
	}
	if req.InputTexts == nil {
		return nil, nil, httperr.BadRequest("Invalid batch payload: input_texts is required")
	}
	return translatable.NewTextBatch(req.InputTexts), &req, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
