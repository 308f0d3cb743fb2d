package cli

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/aretw0/penrose/pkg/domain"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// Output formats for generated segments.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
	FormatText = "text"
)

// Extension returns the file extension for format, with ".zst" appended when compressed.
func Extension(format string, compressed bool) string {
	ext := "." + format
	if format == FormatText {
		ext = ".txt"
	}
	if compressed {
		ext += ".zst"
	}
	return ext
}

// WriteResult encodes res to w. json and yaml carry the whole result;
// csv and text carry only the segments, one per line.
func WriteResult(w io.Writer, res *domain.Result, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, res)
	case FormatText:
		return writeText(w, res)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeCSV(w io.Writer, res *domain.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x1", "y1", "x2", "y2"}); err != nil {
		return err
	}
	for _, s := range res.Segments {
		row := []string{
			formatCoord(s.Start.X), formatCoord(s.Start.Y),
			formatCoord(s.End.X), formatCoord(s.End.Y),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeText(w io.Writer, res *domain.Result) error {
	bw := bufio.NewWriter(w)
	for _, s := range res.Segments {
		fmt.Fprintf(bw, "%s %s %s %s\n",
			formatCoord(s.Start.X), formatCoord(s.Start.Y),
			formatCoord(s.End.X), formatCoord(s.End.Y))
	}
	return bw.Flush()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// nopCloser keeps Close from closing the caller's writer.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// OpenOutput wraps w in a zstd stream when compress is set. Close must be
// called to flush the final frame; it never closes w itself.
func OpenOutput(w io.Writer, compress bool) (io.WriteCloser, error) {
	if !compress {
		return nopCloser{w}, nil
	}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return enc, nil
}
