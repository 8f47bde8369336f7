package csvload

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/vvka-141/csvmongo/internal/checksum"
	"github.com/vvka-141/csvmongo/internal/files/filesystem"
	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options control how the CSV is read.
type Options struct {
	Delimiter        rune
	DuplicateHeaders csvmongo.HeaderPolicy
}

// DefaultOptions returns comma-separated parsing with duplicate headers renamed.
func DefaultOptions() Options {
	return Options{
		Delimiter:        csvmongo.DefaultDelimiter,
		DuplicateHeaders: csvmongo.HeaderPolicyRename,
	}
}

// OptionsFromConfig picks the parsing options out of an import configuration.
func OptionsFromConfig(cfg csvmongo.ImportConfig) Options {
	return Options{
		Delimiter:        cfg.Delimiter,
		DuplicateHeaders: cfg.DuplicateHeaders,
	}
}

// Loader reads a CSV file into a csvmongo.Table.
type Loader struct {
	fsProvider filesystem.FileSystemProvider
	opts       Options
}

// NewLoader creates a Loader over the OS filesystem.
func NewLoader(opts Options) *Loader {
	return NewLoaderWithFS(filesystem.NewOSFileSystem(), opts)
}

// NewLoaderWithFS creates a Loader over the given filesystem.
func NewLoaderWithFS(fsProvider filesystem.FileSystemProvider, opts Options) *Loader {
	if opts.Delimiter == 0 {
		opts.Delimiter = csvmongo.DefaultDelimiter
	}
	if opts.DuplicateHeaders == "" {
		opts.DuplicateHeaders = csvmongo.HeaderPolicyRename
	}
	return &Loader{fsProvider: fsProvider, opts: opts}
}

// Load parses the file at path. Parse failures match csvmongo.ErrParse.
func (l *Loader) Load(path string) (*csvmongo.Table, error) {
	f, err := l.fsProvider.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	cr := checksum.NewReader(f)
	table, err := l.Read(cr)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	table.SetChecksum(cr.Sum())
	return table, nil
}

// Read parses CSV from r.
func (l *Loader) Read(r io.Reader) (*csvmongo.Table, error) {
	br := bufio.NewReader(r)
	if err := skipBOM(br); err != nil {
		return nil, fmt.Errorf("%w: %w", csvmongo.ErrParse, err)
	}

	reader := csv.NewReader(br)
	reader.Comma = l.opts.Delimiter
	// 0: every record must have as many fields as the header
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("file is empty, expected a header row: %w", csvmongo.ErrParse)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", csvmongo.ErrParse, err)
	}

	names, err := normalizeHeader(header, l.opts.DuplicateHeaders)
	if err != nil {
		return nil, err
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", csvmongo.ErrParse, err)
		}
		records = append(records, record)
	}

	columns := make([]csvmongo.Column, len(names))
	for j, name := range names {
		columns[j] = csvmongo.Column{Name: name, Type: inferColumnType(records, j)}
	}

	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(columns))
		for j, col := range columns {
			row[j] = convertCell(rec[j], col.Type)
		}
		rows[i] = row
	}

	return csvmongo.NewTable(columns, rows)
}

// skipBOM drops a UTF-8 byte order mark so a quoted first header cell
// still starts with its quote.
func skipBOM(br *bufio.Reader) error {
	head, err := br.Peek(len(utf8BOM))
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if !bytes.Equal(head, utf8BOM) {
		return nil
	}
	_, err = br.Discard(len(utf8BOM))
	return err
}

// normalizeHeader names empty header cells and resolves repeated names.
func normalizeHeader(header []string, policy csvmongo.HeaderPolicy) ([]string, error) {
	names := make([]string, len(header))
	for i, h := range header {
		if h == "" {
			h = csvmongo.UnnamedColumnPrefix + strconv.Itoa(i)
		}
		names[i] = h
	}

	taken := make(map[string]struct{}, len(names))
	for _, n := range names {
		taken[n] = struct{}{}
	}

	seen := make(map[string]int, len(names))
	for i, n := range names {
		count, dup := seen[n]
		seen[n] = count + 1
		if !dup {
			continue
		}

		if policy == csvmongo.HeaderPolicyReject {
			return nil, fmt.Errorf("duplicate column %q in header (columns %d and %d): %w",
				n, indexOf(names[:i], n)+1, i+1, csvmongo.ErrParse)
		}

		// name.1, name.2, ... skipping names the header already uses
		suffix := count
		renamed := fmt.Sprintf("%s.%d", n, suffix)
		for {
			if _, clash := taken[renamed]; !clash {
				break
			}
			suffix++
			renamed = fmt.Sprintf("%s.%d", n, suffix)
		}
		seen[n] = suffix + 1
		taken[renamed] = struct{}{}
		names[i] = renamed
	}

	return names, nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
