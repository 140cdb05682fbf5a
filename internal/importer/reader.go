package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/quizlab/quizlab-backend/internal/model"
)

// Structural read errors. These abort the whole operation; nothing partial
// is ingested.
var (
	ErrUndecodable    = errors.New("input is neither valid UTF-8 nor Shift_JIS")
	ErrMissingColumns = errors.New("missing required columns")
)

// ParsedQuestion pairs a validated question with the input row it came
// from, so downstream warnings can cite the row.
type ParsedQuestion struct {
	Row      int
	Question *model.Question
}

// ReadResult carries everything one read pass produced: validated rows,
// per-row validation errors, and advisory warnings.
type ReadResult struct {
	Questions []ParsedQuestion
	Errors    []model.RowError
	Warnings  []model.RowWarning
}

// Read consumes a whole tabular stream. The input is decoded as UTF-8
// first; if that fails, the entire read is retried as Shift_JIS, and if
// both fail the whole operation fails with ErrUndecodable. Row numbers in
// errors and warnings are 1-based and count the header as row 1, so the
// first data row is row 2.
func Read(r io.Reader) (*ReadResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	decoded, err := decode(raw)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(decoded))
	cr.FieldsPerRecord = -1 // ragged rows become empty cells, not read errors
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(RequiredColumns, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	if missing := missingColumns(header); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	result := &ReadResult{}
	rowNum := 1 // header is row 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", rowNum+1, err)
		}
		rowNum++

		row := make(map[string]string, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}

		if IsBlankRow(row) {
			continue
		}

		q, rowErr := ParseRow(row, rowNum)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Questions = append(result.Questions, ParsedQuestion{Row: rowNum, Question: q})
	}

	if len(result.Questions) == 0 && len(result.Errors) == 0 {
		result.Warnings = append(result.Warnings, model.RowWarning{
			Message: "file has a valid header but no data rows",
		})
	}

	return result, nil
}

// decode returns the input as UTF-8 text. UTF-8 is the primary encoding;
// Shift_JIS is the one fixed fallback.
func decode(raw []byte) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) // strip UTF-8 BOM

	if utf8.Valid(raw) {
		return raw, nil
	}

	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
	if err != nil {
		return nil, ErrUndecodable
	}
	// The decoder substitutes U+FFFD for bytes it cannot map instead of
	// returning an error, so substitution means the fallback failed too.
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return nil, ErrUndecodable
	}
	return decoded, nil
}

func missingColumns(header []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, col := range header {
		present[col] = struct{}{}
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
