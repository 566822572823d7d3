package table

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/polarbars"
)

// Format identifies how a source file is laid out.
type Format string

const (
	FormatAuto      Format = ""
	FormatXLSX      Format = "xlsx"
	FormatXLS       Format = "xls"
	FormatDelimited Format = "delimited"
)

// Options controls how a source is read. The zero value picks the format from
// the file extension, reads the first sheet and sniffs the delimiter.
type Options struct {
	Format Format

	// Sheet names the worksheet to read from a workbook. Empty means the
	// first sheet.
	Sheet string

	// Delimiter is used for delimited text. Zero means detect it.
	Delimiter rune
}

var compressionSuffixes = []string{".gz", ".bz2", ".xz", ".zip"}

// FormatFromPath picks a Format from the file extension, looking through a
// trailing compression suffix for delimited text.
func FormatFromPath(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))

	for _, suffix := range compressionSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			switch filepath.Ext(name) {
			case ".csv", ".tsv", ".txt", ".tab":
				return FormatDelimited, nil
			}
			return FormatAuto, fmt.Errorf("%s: compressed input must be delimited text", path)
		}
	}

	switch filepath.Ext(name) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	case ".csv", ".tsv", ".txt", ".tab":
		return FormatDelimited, nil
	}

	return FormatAuto, fmt.Errorf("%s: cannot tell the file format from its extension", path)
}

// Load reads the table at path, which may be local or a gs:// object (client
// must then be non-nil). A missing source yields an error satisfying
// errors.Is(err, fs.ErrNotExist); an unreadable one yields a *ParseError.
func Load(ctx context.Context, path string, opts Options, client *storage.Client) (*Table, error) {
	if opts.Format == FormatAuto {
		format, err := FormatFromPath(path)
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		opts.Format = format
	}

	f, _, err := polarbars.OpenLocalOrGoogleStorage(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f, path, opts)
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d rows and %d columns from %s\n", t.Len(), len(t.headers), path)

	return t, nil
}

// Read parses a table from r. source is only used for messages. opts.Format
// must be set.
func Read(r io.Reader, source string, opts Options) (*Table, error) {
	// The workbook readers need random access, and reading everything up
	// front also surfaces i/o errors here rather than as parse errors.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	var header []string
	var rows [][]string
	var lines []int

	switch opts.Format {
	case FormatXLSX:
		header, rows, err = readXLSX(bytes.NewReader(data), opts.Sheet)
	case FormatXLS:
		header, rows, err = readXLS(bytes.NewReader(data), opts.Sheet)
	case FormatDelimited:
		header, rows, lines, err = readDelimited(bytes.NewReader(data), opts.Delimiter)
	default:
		err = fmt.Errorf("unknown format %q", opts.Format)
	}
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = source
			return nil, pe
		}
		return nil, &ParseError{Path: source, Err: err}
	}

	return newTable(source, header, rows, lines), nil
}
