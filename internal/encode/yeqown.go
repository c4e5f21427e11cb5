package encode

import (
	"github.com/yeqown/go-qrcode/v2"

	"github.com/cristianadrielbraun/qrglow/internal/art"
	qrerr "github.com/cristianadrielbraun/qrglow/internal/errors"
)

// matrixWriter is a qrcode.Writer that keeps the module matrix instead of
// drawing it.
type matrixWriter struct {
	width  int
	matrix []art.Module
}

func (w *matrixWriter) Write(mat qrcode.Matrix) error {
	w.width = mat.Width()
	w.matrix = make([]art.Module, mat.Width()*mat.Height())
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		var m art.Module
		if v.IsSet() {
			m |= art.ON
		}
		switch v.Type() {
		case qrcode.QRType_FINDER:
			m |= art.FINDER
		case qrcode.QRType_DATA:
			m |= art.DATA
		case qrcode.QRType_TIMING:
			m |= art.TIMING
		case qrcode.QRType_FORMAT:
			m |= art.FORMAT
		case qrcode.QRType_VERSION:
			m |= art.VERSION
		}
		w.matrix[y*w.width+x] = m
	})
	return nil
}

func (w *matrixWriter) Close() error { return nil }

// encodeYeqown lets the library pick the smallest version, then re-encodes
// at MinVersion when that is larger. A forced mode is reported as used
// because WithEncodingMode makes the library encode every segment in it.
func encodeYeqown(req Request) (art.OutputQr, error) {
	if req.StrictVersion {
		return yeqownAt(req, req.MinVersion)
	}
	out, err := yeqownAt(req, 0)
	if err != nil || out.Version >= req.MinVersion {
		return out, err
	}
	return yeqownAt(req, req.MinVersion)
}

// yeqownAt encodes at the given version, or the automatic one for 0. The
// library panics on text that does not fit a forced version, so panics are
// turned into ENCODE_FAILED.
func yeqownAt(req Request, version int) (out art.OutputQr, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = art.OutputQr{}, qrerr.New(qrerr.ErrCodeEncodeFailed, "yeqown encode: %v", r)
		}
	}()

	opts := []qrcode.EncodeOption{yeqownLevel(req.ECL)}
	if mode := yeqownMode(req.Mode); mode != nil {
		opts = append(opts, mode)
	}
	if version > 0 {
		opts = append(opts, qrcode.WithVersion(version))
	}

	qrc, err := qrcode.NewWith(req.Text, opts...)
	if err != nil {
		return art.OutputQr{}, qrerr.Wrap(qrerr.ErrCodeEncodeFailed, err, "yeqown encode")
	}
	w := &matrixWriter{}
	if err := qrc.Save(w); err != nil {
		return art.OutputQr{}, qrerr.Wrap(qrerr.ErrCodeEncodeFailed, err, "yeqown matrix")
	}
	v, err := versionForWidth(w.width)
	if err != nil {
		return art.OutputQr{}, qrerr.Wrap(qrerr.ErrCodeEncodeFailed, err, "yeqown matrix")
	}
	return art.OutputQr{Version: v, Mode: req.Mode, Mask: -1, Matrix: w.matrix}, nil
}

func yeqownLevel(ecl art.ECL) qrcode.EncodeOption {
	switch ecl {
	case art.ECLMedium:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	case art.ECLQuartile:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	case art.ECLHigh:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	default:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	}
}

func yeqownMode(mode art.Mode) qrcode.EncodeOption {
	switch mode {
	case art.ModeNumeric:
		return qrcode.WithEncodingMode(qrcode.EncModeNumeric)
	case art.ModeAlphanumeric:
		return qrcode.WithEncodingMode(qrcode.EncModeAlphanumeric)
	case art.ModeByte:
		return qrcode.WithEncodingMode(qrcode.EncModeByte)
	default:
		return nil
	}
}
