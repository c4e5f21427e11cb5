package handlers

import (
	"crypto/rand"
	"fmt"
	"image/color"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
	"github.com/yeqown/go-qrcode/writer/standard/shapes"

	qrerr "github.com/cristianadrielbraun/qrglow/internal/errors"
)

// PlainQRHandler renders a conventional QR code PNG through the standard
// image writer. It serves as the scannable reference next to the artwork.
func (h *Handler) PlainQRHandler(c *gin.Context) {
	text := strings.TrimSpace(c.Query("text"))
	if text == "" {
		writeError(c, qrerr.New(qrerr.ErrCodeInvalidInput, "text parameter is required"))
		return
	}

	fgColor := parseColorParam(c.Query("fg"), color.RGBA{0, 0, 0, 255})
	bgColor := parseColorParam(c.Query("bg"), color.RGBA{255, 255, 255, 255})
	qrShape := c.DefaultQuery("shape", "rectangle")

	var moduleSize uint8 = 16
	if c.Query("size") == "download" {
		moduleSize = 120
	}

	qrc, err := qrcode.NewWith(text, qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart))
	if err != nil {
		writeError(c, qrerr.Wrap(qrerr.ErrCodeEncodeFailed, err, "encode"))
		return
	}

	options := []standard.ImageOption{
		standard.WithQRWidth(moduleSize),
		standard.WithBorderWidth(0),
		standard.WithFgColor(fgColor),
	}
	if bgColor.A == 0 {
		options = append(options, standard.WithBgTransparent(), standard.WithBuiltinImageEncoder(standard.PNG_FORMAT))
	} else {
		options = append(options, standard.WithBgColor(bgColor), standard.WithBuiltinImageEncoder(standard.PNG_FORMAT))
	}
	switch qrShape {
	case "circle":
		options = append(options, standard.WithCircleShape())
	case "liquid":
		options = append(options, standard.WithCustomShape(&customShape{drawFunc: shapes.LiquidBlock()}))
	case "chain":
		options = append(options, standard.WithCustomShape(&customShape{drawFunc: shapes.ChainBlock()}))
	case "hstripe":
		options = append(options, standard.WithCustomShape(&customShape{drawFunc: shapes.HStripeBlock(0.85)}))
	case "vstripe":
		options = append(options, standard.WithCustomShape(&customShape{drawFunc: shapes.VStripeBlock(0.85)}))
	}

	tmpFile := filepath.Join(os.TempDir(), generateUniqueFilename("qr", ".png"))
	defer os.Remove(tmpFile)

	writer, err := standard.New(tmpFile, options...)
	if err != nil {
		writeError(c, fmt.Errorf("create writer: %w", err))
		return
	}
	if err := qrc.Save(writer); err != nil {
		writeError(c, fmt.Errorf("save qr: %w", err))
		return
	}

	data, err := os.ReadFile(tmpFile)
	if err != nil {
		writeError(c, fmt.Errorf("read qr: %w", err))
		return
	}
	c.Header("X-QR-Debug", fmt.Sprintf("format=png;shape=%s", qrShape))
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", data)
}

// parseColorParam parses a hex color, "transparent", or returns
// defaultColor when param is empty or malformed.
func parseColorParam(param string, defaultColor color.RGBA) color.RGBA {
	if param == "" {
		return defaultColor
	}
	if strings.ToLower(param) == "transparent" {
		return color.RGBA{0, 0, 0, 0}
	}
	if !strings.HasPrefix(param, "#") {
		param = "#" + param
	}
	c, err := colorful.Hex(param)
	if err != nil {
		return defaultColor
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}
}

func generateUniqueFilename(prefix, extension string) string {
	randomBytes := make([]byte, 4)
	_, _ = rand.Read(randomBytes)
	return fmt.Sprintf("%s_%d_%x%s", prefix, time.Now().UnixNano(), randomBytes, extension)
}

// customShape adapts a shapes package draw function to standard.IShape.
type customShape struct {
	drawFunc func(ctx *standard.DrawContext)
}

func (cs *customShape) Draw(ctx *standard.DrawContext) {
	cs.drawFunc(ctx)
}

func (cs *customShape) DrawFinder(ctx *standard.DrawContext) {
	cs.drawFunc(ctx)
}
