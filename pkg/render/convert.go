package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrConverterMissing is returned by [ToPDF] and [ToPNG] when rsvg-convert
// is not on PATH (librsvg2-bin on Debian, librsvg on Homebrew).
var ErrConverterMissing = errors.New("rsvg-convert not found")

// ToPDF converts a rendered chart to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG converts a rendered chart to PNG at scale times its natural size.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

func convert(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	bin, err := exec.LookPath("rsvg-convert")
	if err != nil {
		return nil, fmt.Errorf("%s output: %w", format, ErrConverterMissing)
	}

	cmd := exec.CommandContext(ctx, bin, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("rsvg-convert %s: %w: %s", format, err, msg)
		}
		return nil, fmt.Errorf("rsvg-convert %s: %w", format, err)
	}
	return stdout.Bytes(), nil
}
