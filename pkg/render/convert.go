package render

import (
	"bytes"
	"os/exec"
	"strconv"
	"strings"

	errs "github.com/matzehuels/netvalue/pkg/errors"
)

// converter is librsvg's command-line tool.
var converter = "rsvg-convert"

const installHint = "install librsvg (macOS: brew install librsvg, Debian/Ubuntu: apt install librsvg2-bin)"

// Available reports whether the converter is on PATH.
func Available() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

// ToPDF converts an SVG document to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

// ToPNG rasterises an SVG document. scale multiplies the SVG's own size;
// values <= 0 render at 1x.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

func convert(svg []byte, format string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(converter)
	if err != nil {
		return nil, errs.New(errs.ErrCodeUnsupported, "%s output needs %s: %s", format, converter, installHint)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(path, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "%s to %s: %s", converter, format, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
