package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
)

// stdio names standard input or output in file arguments.
const stdio = "-"

var gzipMagic = []byte{0x1f, 0x8b}

// isGzip reports whether an input should be decompressed.
func isGzip(path string, head []byte) bool {
	return strings.HasSuffix(path, ".gz") || bytes.HasPrefix(head, gzipMagic)
}

// readInput reads a whole file, or stdin for "-", decompressing gzip input.
func (c *CLI) readInput(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == stdio {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if isGzip(path, data) {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		defer zr.Close()
		plain, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		c.Logger.Debug("decompressed input",
			"path", path,
			"compressed", humanize.Bytes(uint64(len(data))),
			"size", humanize.Bytes(uint64(len(plain))))
		return plain, nil
	}

	c.Logger.Debug("read input", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return data, nil
}

// writeOutput writes data to path, or to c.Out for "" and "-". Paths
// ending in .gz are gzip-compressed.
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == "" || path == stdio {
		_, err := c.Out.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if strings.HasSuffix(path, ".gz") {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return err
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
