package translatable

import (
	"github.com/tesseract-hub/translation-api/internal/httperr"
)

// SizeLimitGuard rejects oversized inputs before any translation call is
// made. The limit applies to NFC-normalized translatable content; input
// of exactly the limit passes.
type SizeLimitGuard struct {
	Limit         int
	AllowOverride bool
}

// Check validates t against the configured ceiling. ignoreLimit is the
// client's request flag; it only takes effect when the deployment
// allows overrides.
func (g SizeLimitGuard) Check(t Translatable, ignoreLimit bool) error {
	if g.AllowOverride && ignoreLimit {
		return nil
	}
	if t.Metrics().NFCLen > g.Limit {
		return httperr.PayloadTooLarge("The total text length in the %s exceeds the translation limit.", t.Kind())
	}
	return nil
}
