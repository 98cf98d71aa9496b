package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// rsvgCommand is the librsvg tool used for PDF and PNG output.
var rsvgCommand = "rsvg-convert"

// ErrNoRSVG is returned when rsvg-convert is not on PATH.
var ErrNoRSVG = errors.New("rsvg-convert not found; install librsvg (brew install librsvg, apt install librsvg2-bin)")

// ToPDF converts SVG bytes to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convertSVG(ctx, svg, "pdf", 0)
}

// ToPNG converts SVG bytes to PNG, zoomed by scale. A scale <= 0 means 1.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convertSVG(ctx, svg, "png", scale)
}

func convertSVG(ctx context.Context, svg []byte, format string, zoom float64) ([]byte, error) {
	bin, err := exec.LookPath(rsvgCommand)
	if err != nil {
		return nil, fmt.Errorf("%s output: %w", format, ErrNoRSVG)
	}

	args := []string{"--format", format}
	if zoom > 0 {
		args = append(args, "--zoom", strconv.FormatFloat(zoom, 'f', 2, 64))
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("rsvg-convert %s: %w: %s", format, err, bytes.TrimSpace(stderr.Bytes()))
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("rsvg-convert %s: empty output", format)
	}
	return out.Bytes(), nil
}
