package encode

import (
	"rsc.io/qr"

	"github.com/cristianadrielbraun/qrglow/internal/art"
	qrerr "github.com/cristianadrielbraun/qrglow/internal/errors"
)

// encodeRSC always picks the smallest version and its own segment modes;
// Encode rejects forced modes for it and checks strict versions afterwards.
func encodeRSC(req Request) (art.OutputQr, error) {
	code, err := qr.Encode(req.Text, rscLevel(req.ECL))
	if err != nil {
		return art.OutputQr{}, qrerr.Wrap(qrerr.ErrCodeEncodeFailed, err, "rsc encode")
	}
	version, err := versionForWidth(code.Size)
	if err != nil {
		return art.OutputQr{}, qrerr.Wrap(qrerr.ErrCodeEncodeFailed, err, "rsc encode")
	}

	matrix := make([]art.Module, code.Size*code.Size)
	for y := 0; y < code.Size; y++ {
		for x := 0; x < code.Size; x++ {
			if code.Black(x, y) {
				matrix[y*code.Size+x] = art.ON
			}
		}
	}
	return art.OutputQr{Version: version, Mode: art.ModeAuto, Mask: -1, Matrix: matrix}, nil
}

func rscLevel(ecl art.ECL) qr.Level {
	switch ecl {
	case art.ECLMedium:
		return qr.M
	case art.ECLQuartile:
		return qr.Q
	case art.ECLHigh:
		return qr.H
	default:
		return qr.L
	}
}
