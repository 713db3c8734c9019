package billing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesseract-hub/translation-api/internal/models"
	"github.com/tesseract-hub/translation-api/internal/translatable"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(logger)
}

func TestHeaders(t *testing.T) {
	rc := StartRequest()
	headers := rc.Headers("src=en;tgt=cs;model=en-cs")

	assert.Equal(t, "src=en;tgt=cs;model=en-cs", headers["X-Billing-Extra"])

	start, err := time.Parse(time.RFC3339Nano, headers["X-Billing-Start-Time"])
	require.NoError(t, err)
	end, err := time.Parse(time.RFC3339Nano, headers["X-Billing-End-Time"])
	require.NoError(t, err)
	assert.False(t, end.Before(start))

	dur, err := time.ParseDuration(headers["X-Billing-Duration"])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, dur, time.Duration(0))
}

func TestHeadersPanicsWithoutStart(t *testing.T) {
	var rc RequestContext
	assert.PanicsWithValue(t, "billing: Headers called before StartRequest", func() {
		rc.Headers("src=en;tgt=cs")
	})
}

func TestVariantHeaders(t *testing.T) {
	txt := translatable.NewText("one two three")
	headers := VariantHeaders(txt)

	assert.Equal(t, translatable.DirectInput, headers["X-Billing-Filename"])
	assert.Equal(t, "3", headers["X-Billing-Input-Word-Count"])
	assert.Equal(t, "0", headers["X-Billing-Output-Word-Count"])
	assert.Equal(t, "13", headers["X-Billing-Input-NFC-Len"])
}

func newTestContext(t *testing.T, rawQuery string, form url.Values, headers map[string]string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v2/languages/?"+rawQuery, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	return c
}

func TestMetaFromRequestDefaults(t *testing.T) {
	c := newTestContext(t, "", nil, nil)
	meta := MetaFromRequest(c)

	assert.Equal(t, "unknown", meta.Author)
	assert.Equal(t, "unknown", meta.Frontend)
	assert.Equal(t, "unknown", meta.AppVersion)
	assert.Equal(t, "unknown", meta.UserLang)
	assert.Equal(t, "keyboard", meta.InputType)
	assert.False(t, meta.LogInput)
	assert.False(t, meta.IgnoreSizeLimit)
}

func TestMetaFromRequestQueryOverridesForm(t *testing.T) {
	form := url.Values{"author": {"form-author"}, "logInput": {"true"}}
	c := newTestContext(t, "author=query-author", form, map[string]string{
		"X-Frontend":      "web-ui",
		"X-App-Version":   "2.4.0",
		"X-User-Language": "cs",
		"X-Real-IP":       "10.0.0.9",
	})
	meta := MetaFromRequest(c)

	assert.Equal(t, "query-author", meta.Author)
	assert.Equal(t, "web-ui", meta.Frontend)
	assert.Equal(t, "2.4.0", meta.AppVersion)
	assert.Equal(t, "cs", meta.UserLang)
	assert.Equal(t, "10.0.0.9", meta.IPAddress)
	assert.True(t, meta.LogInput)
}

type fakeRepo struct {
	access  []*models.AccessRecord
	content []*models.ContentRecord
	fail    bool
}

func (f *fakeRepo) LogAccess(_ context.Context, r *models.AccessRecord) error {
	if f.fail {
		return errors.New("db down")
	}
	f.access = append(f.access, r)
	return nil
}

func (f *fakeRepo) LogContent(_ context.Context, r *models.ContentRecord) error {
	if f.fail {
		return errors.New("db down")
	}
	f.content = append(f.content, r)
	return nil
}

func TestRecorderWritesAccessRecord(t *testing.T) {
	repo := &fakeRepo{}
	rec := NewRecorder(repo, testLogger())
	txt := translatable.NewText("hello there")

	rec.Record(context.Background(), StartRequest(), "en", "cs", txt, RequestMeta{
		Author:    "tester",
		Frontend:  "curl",
		InputType: "keyboard",
	})

	require.Len(t, repo.access, 1)
	assert.Equal(t, "en", repo.access[0].SrcLang)
	assert.Equal(t, "cs", repo.access[0].TgtLang)
	assert.Equal(t, "tester", repo.access[0].Author)
	assert.Equal(t, 11, repo.access[0].InputNFCLen)
	assert.Empty(t, repo.content, "content record requires the logInput opt-in")
}

func TestRecorderWritesContentRecordOnOptIn(t *testing.T) {
	repo := &fakeRepo{}
	rec := NewRecorder(repo, testLogger())
	txt := translatable.NewText("hello there")

	rec.Record(context.Background(), StartRequest(), "en", "cs", txt, RequestMeta{LogInput: true, IPAddress: "10.0.0.9"})

	require.Len(t, repo.content, 1)
	assert.Equal(t, "hello there", repo.content[0].SourceText)
	assert.Equal(t, "10.0.0.9", repo.content[0].IPAddress)
}

func TestRecorderSwallowsRepositoryFailures(t *testing.T) {
	rec := NewRecorder(&fakeRepo{fail: true}, testLogger())
	assert.NotPanics(t, func() {
		rec.Record(context.Background(), StartRequest(), "en", "cs", translatable.NewText("x"), RequestMeta{LogInput: true})
	})
}

func TestRecorderWithoutRepositoryIsNoOp(t *testing.T) {
	rec := NewRecorder(nil, testLogger())
	assert.NotPanics(t, func() {
		rec.Record(context.Background(), StartRequest(), "en", "cs", translatable.NewText("x"), RequestMeta{})
	})
}
