// Package encode produces QR module matrices for the renderer from text,
// using one of several encoder libraries.
package encode

import (
	"fmt"
	"strings"

	"github.com/cristianadrielbraun/qrglow/internal/art"
	qrerr "github.com/cristianadrielbraun/qrglow/internal/errors"
)

// Backend names an encoder library.
type Backend string

const (
	// BackendYeqown reports per-module roles (finder, timing, ...), which the
	// renderer uses for finder stroke thickness. It is the default.
	BackendYeqown Backend = "yeqown"
	BackendSkip2  Backend = "skip2"
	BackendRSC    Backend = "rsc"
)

// Backends lists the supported backends, default first.
var Backends = []Backend{BackendYeqown, BackendSkip2, BackendRSC}

// ParseBackend is case-insensitive. Empty input means BackendYeqown.
func ParseBackend(s string) (Backend, bool) {
	b := Backend(strings.ToLower(strings.TrimSpace(s)))
	if b == "" {
		return BackendYeqown, true
	}
	for _, known := range Backends {
		if b == known {
			return b, true
		}
	}
	return "", false
}

// maxTextLen caps input well above what a version 40 symbol can hold.
const maxTextLen = 7089

// Request describes a symbol to encode.
type Request struct {
	Text string
	// MinVersion is the smallest version to use when > 0. Text that needs a
	// larger symbol still gets one unless StrictVersion is set. The rsc
	// backend cannot raise its version and ignores MinVersion.
	MinVersion int
	// StrictVersion requires exactly MinVersion; text that does not fit is
	// ENCODE_FAILED.
	StrictVersion bool
	ECL           art.ECL
	// Mode forces a segment mode. Only the yeqown backend can force one,
	// and it has no kanji encoder.
	Mode    art.Mode
	Backend Backend
}

// Encode encodes req.Text with the requested backend.
func Encode(req Request) (art.OutputQr, error) {
	if req.Text == "" {
		return art.OutputQr{}, qrerr.New(qrerr.ErrCodeInvalidInput, "text is required")
	}
	if len(req.Text) > maxTextLen {
		return art.OutputQr{}, qrerr.New(qrerr.ErrCodeInvalidInput, "text is too long (%d bytes)", len(req.Text))
	}
	if req.MinVersion < 0 || req.MinVersion > art.MaxVersion {
		return art.OutputQr{}, qrerr.New(qrerr.ErrCodeInvalidInput, "version %d out of range [0, %d]", req.MinVersion, art.MaxVersion)
	}
	if req.StrictVersion && req.MinVersion == 0 {
		return art.OutputQr{}, qrerr.New(qrerr.ErrCodeInvalidInput, "strict version needs a version")
	}
	if req.ECL == "" {
		req.ECL = art.ECLLow
	}
	if req.Mode == "" {
		req.Mode = art.ModeAuto
	}
	if req.Backend == "" {
		req.Backend = BackendYeqown
	}
	if err := checkMode(req); err != nil {
		return art.OutputQr{}, err
	}

	var (
		out art.OutputQr
		err error
	)
	switch req.Backend {
	case BackendYeqown:
		out, err = encodeYeqown(req)
	case BackendSkip2:
		out, err = encodeSkip2(req)
	case BackendRSC:
		out, err = encodeRSC(req)
	default:
		return art.OutputQr{}, qrerr.New(qrerr.ErrCodeInvalidInput, "unknown encoder %q", req.Backend)
	}
	if err != nil {
		return art.OutputQr{}, err
	}

	if req.StrictVersion && out.Version != req.MinVersion {
		return art.OutputQr{}, qrerr.New(qrerr.ErrCodeEncodeFailed, "%s produced version %d, want exactly %d", req.Backend, out.Version, req.MinVersion)
	}
	out.Text = req.Text
	out.ECL = req.ECL
	if w := out.Width(); len(out.Matrix) != w*w {
		return art.OutputQr{}, qrerr.New(qrerr.ErrCodeEncodeFailed, "%s produced %d modules for version %d", req.Backend, len(out.Matrix), out.Version)
	}
	return out, nil
}

const alphanumericSet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// checkMode rejects modes the backend cannot force and text the forced
// mode cannot carry.
func checkMode(req Request) error {
	switch req.Mode {
	case art.ModeAuto:
		return nil
	case art.ModeKanji:
		return qrerr.New(qrerr.ErrCodeInvalidInput, "kanji mode is not supported")
	}
	if req.Backend != BackendYeqown {
		return qrerr.New(qrerr.ErrCodeInvalidInput, "encoder %s cannot force %s mode", req.Backend, req.Mode)
	}
	switch req.Mode {
	case art.ModeNumeric:
		if strings.Trim(req.Text, "0123456789") != "" {
			return qrerr.New(qrerr.ErrCodeInvalidInput, "numeric mode needs digits only")
		}
	case art.ModeAlphanumeric:
		for _, r := range req.Text {
			if !strings.ContainsRune(alphanumericSet, r) {
				return qrerr.New(qrerr.ErrCodeInvalidInput, "alphanumeric mode cannot encode %q", r)
			}
		}
	}
	return nil
}

// versionForWidth returns the version of a symbol with the given side.
func versionForWidth(width int) (int, error) {
	if width < 21 || (width-17)%4 != 0 {
		return 0, fmt.Errorf("symbol width %d is not a QR size", width)
	}
	return (width - 17) / 4, nil
}
