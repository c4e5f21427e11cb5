package art

import "strings"

// Module is the flag set carried by one cell of a QR matrix or working grid.
type Module uint8

const (
	ON Module = 1 << iota
	DATA
	FINDER
	ALIGNMENT
	TIMING
	FORMAT
	VERSION
	MODIFIER
)

// Has reports whether every flag in f is set on m.
func (m Module) Has(f Module) bool { return m&f == f }

var moduleNames = []struct {
	flag Module
	name string
}{
	{ON, "on"}, {DATA, "data"}, {FINDER, "finder"}, {ALIGNMENT, "alignment"},
	{TIMING, "timing"}, {FORMAT, "format"}, {VERSION, "version"}, {MODIFIER, "modifier"},
}

func (m Module) String() string {
	if m == 0 {
		return "off"
	}
	var parts []string
	for _, n := range moduleNames {
		if m.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ECL is a QR error correction level.
type ECL string

const (
	ECLLow      ECL = "L"
	ECLMedium   ECL = "M"
	ECLQuartile ECL = "Q"
	ECLHigh     ECL = "H"
)

// ParseECL accepts L, M, Q or H (any case). Empty input means ECLLow.
func ParseECL(s string) (ECL, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "L", "LOW":
		return ECLLow, true
	case "M", "MEDIUM":
		return ECLMedium, true
	case "Q", "QUARTILE":
		return ECLQuartile, true
	case "H", "HIGH":
		return ECLHigh, true
	}
	return "", false
}

// Mode is the segment encoding mode reported by the encoder.
type Mode string

const (
	ModeAuto         Mode = "auto"
	ModeNumeric      Mode = "numeric"
	ModeAlphanumeric Mode = "alphanumeric"
	ModeByte         Mode = "byte"
	ModeKanji        Mode = "kanji"
)

// ParseMode accepts the Mode names. Empty input means ModeAuto.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, true
	case ModeAuto, ModeNumeric, ModeAlphanumeric, ModeByte, ModeKanji:
		return m, true
	}
	return "", false
}

// OutputQr is an encoded symbol as handed over by an encoder. ECL, Mode and
// Mask are metadata for callers; the renderer only reads Version and Matrix.
type OutputQr struct {
	Text    string
	Version int
	ECL     ECL
	Mode    Mode
	Mask    int // -1 when the encoder does not report it
	Matrix  []Module
}

// Width returns the side of the symbol for its version.
func (q OutputQr) Width() int { return QRWidth(q.Version) }

// QRWidth returns 4*version + 17.
func QRWidth(version int) int { return 4*version + 17 }
