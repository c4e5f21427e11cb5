package encode

import (
	skip2 "github.com/skip2/go-qrcode"

	"github.com/cristianadrielbraun/qrglow/internal/art"
	qrerr "github.com/cristianadrielbraun/qrglow/internal/errors"
)

// encodeSkip2 picks the smallest version first and forces MinVersion only
// when the automatic symbol is smaller.
func encodeSkip2(req Request) (art.OutputQr, error) {
	level := skip2Level(req.ECL)

	q, err := skip2.New(req.Text, level)
	if err != nil {
		return art.OutputQr{}, qrerr.Wrap(qrerr.ErrCodeEncodeFailed, err, "skip2 encode")
	}
	if req.StrictVersion && q.VersionNumber > req.MinVersion {
		return art.OutputQr{}, qrerr.New(qrerr.ErrCodeEncodeFailed, "text needs version %d, more than %d", q.VersionNumber, req.MinVersion)
	}
	if q.VersionNumber < req.MinVersion {
		if q, err = skip2.NewWithForcedVersion(req.Text, req.MinVersion, level); err != nil {
			return art.OutputQr{}, qrerr.Wrap(qrerr.ErrCodeEncodeFailed, err, "skip2 encode")
		}
	}
	q.DisableBorder = true

	bitmap := q.Bitmap()
	width := len(bitmap)
	matrix := make([]art.Module, width*width)
	for y, row := range bitmap {
		for x, black := range row {
			if black {
				matrix[y*width+x] = art.ON
			}
		}
	}
	return art.OutputQr{Version: q.VersionNumber, Mode: art.ModeAuto, Mask: -1, Matrix: matrix}, nil
}

func skip2Level(ecl art.ECL) skip2.RecoveryLevel {
	switch ecl {
	case art.ECLMedium:
		return skip2.Medium
	case art.ECLQuartile:
		return skip2.High
	case art.ECLHigh:
		return skip2.Highest
	default:
		return skip2.Low
	}
}
