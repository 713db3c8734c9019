// Package billing computes per-request metering headers and emits the
// audit trail: one access record per completed dispatch, plus an opt-in
// content record.
package billing

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/translation-api/internal/models"
	"github.com/tesseract-hub/translation-api/internal/repository"
	"github.com/tesseract-hub/translation-api/internal/translatable"
)

// RequestContext tracks one request's wall clock. Created at the top of
// a handler, consumed by headers and audit, discarded at return.
type RequestContext struct {
	start   time.Time
	started bool
}

// StartRequest captures the request start time.
func StartRequest() *RequestContext {
	return &RequestContext{start: time.Now(), started: true}
}

// Headers returns the billing header set. extra is the free-form
// dispatch descriptor, e.g. "src=en;tgt=cs" or "src=en;tgt=cs;model=en-cs".
// Calling Headers on a context that was never started is a programming
// error, not a request error.
func (rc *RequestContext) Headers(extra string) map[string]string {
	if !rc.started {
		panic("billing: Headers called before StartRequest")
	}
	end := time.Now()
	return map[string]string{
		"X-Billing-Start-Time": rc.start.Format(time.RFC3339Nano),
		"X-Billing-End-Time":   end.Format(time.RFC3339Nano),
		"X-Billing-Duration":   end.Sub(rc.start).String(),
		"X-Billing-Extra":      extra,
	}
}

// Elapsed returns the microseconds since the request started.
func (rc *RequestContext) Elapsed() int64 {
	return time.Since(rc.start).Microseconds()
}

// VariantHeaders returns the per-translatable metering headers. Input
// counts come from construction-time metrics, so they are stable even
// when translation failed mid-request.
func VariantHeaders(t translatable.Translatable) map[string]string {
	m := t.Metrics()
	return map[string]string{
		"X-Billing-Filename":          m.Filename,
		"X-Billing-Input-Word-Count":  strconv.Itoa(m.WordCount),
		"X-Billing-Output-Word-Count": strconv.Itoa(t.OutputWordCount()),
		"X-Billing-Input-NFC-Len":     strconv.Itoa(m.NFCLen),
	}
}

// RequestMeta is the recognized additional request metadata.
type RequestMeta struct {
	Author          string
	Frontend        string
	AppVersion      string
	UserLang        string
	InputType       string
	IPAddress       string
	LogInput        bool
	IgnoreSizeLimit bool
}

// MetaFromRequest reads the recognized fields from query/form values and
// headers, with the historical "unknown"/"keyboard" defaults.
func MetaFromRequest(c *gin.Context) RequestMeta {
	field := func(name string) string {
		if v := c.Query(name); v != "" {
			return v
		}
		return c.PostForm(name)
	}
	orUnknown := func(v string) string {
		if v == "" {
			return "unknown"
		}
		return v
	}

	frontend := field("frontend")
	if frontend == "" {
		frontend = c.GetHeader("X-Frontend")
	}
	inputType := field("inputType")
	if inputType == "" {
		inputType = "keyboard"
	}

	logInput, _ := strconv.ParseBool(field("logInput"))
	ignoreLimit, _ := strconv.ParseBool(field("ignoreSizeLimit"))

	return RequestMeta{
		Author:          orUnknown(field("author")),
		Frontend:        orUnknown(frontend),
		AppVersion:      orUnknown(c.GetHeader("X-App-Version")),
		UserLang:        orUnknown(c.GetHeader("X-User-Language")),
		InputType:       inputType,
		IPAddress:       orUnknown(c.GetHeader("X-Real-IP")),
		LogInput:        logInput,
		IgnoreSizeLimit: ignoreLimit,
	}
}

// Recorder writes audit records through the repository. Failures are
// logged and swallowed: audit must never mask the primary response.
type Recorder struct {
	repo   repository.AuditRepository
	logger *logrus.Entry
}

// NewRecorder creates a Recorder. repo may be nil when the audit store
// is disabled; recording then becomes a no-op.
func NewRecorder(repo repository.AuditRepository, logger *logrus.Entry) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record emits the access record and, when the request opted in, the
// content record.
func (r *Recorder) Record(ctx context.Context, rc *RequestContext, src, tgt string, t translatable.Translatable, meta RequestMeta) {
	if r.repo == nil {
		return
	}
	access := &models.AccessRecord{
		SrcLang:     src,
		TgtLang:     tgt,
		Author:      meta.Author,
		Frontend:    meta.Frontend,
		InputNFCLen: t.Metrics().NFCLen,
		DurationUS:  rc.Elapsed(),
		InputType:   meta.InputType,
		AppVersion:  meta.AppVersion,
		UserLang:    meta.UserLang,
	}
	if err := r.repo.LogAccess(ctx, access); err != nil {
		r.logger.WithError(err).Error("Failed to write access record")
	}

	if !meta.LogInput {
		return
	}
	content := &models.ContentRecord{
		SrcLang:        src,
		TgtLang:        tgt,
		SourceText:     t.SourceText(),
		TranslatedText: t.TranslatedText(),
		Author:         meta.Author,
		Frontend:       meta.Frontend,
		IPAddress:      meta.IPAddress,
		InputType:      meta.InputType,
		AppVersion:     meta.AppVersion,
		UserLang:       meta.UserLang,
	}
	if err := r.repo.LogContent(ctx, content); err != nil {
		r.logger.WithError(err).Error("Failed to write content record")
	}
}
