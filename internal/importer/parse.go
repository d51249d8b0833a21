package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"franceguessr/internal/model"
)

const (
	delimiter     = ";"
	fieldsPerLine = 5
	headerField   = "Code_commune_INSEE"

	maxInseeCodeLen = 5
	maxCityLen      = 255
	maxLineLen      = 1 << 20
)

var (
	ErrFieldCount = fmt.Errorf("expected %d fields separated by %q", fieldsPerLine, delimiter)
	ErrInseeCode  = errors.New("invalid insee code")
	ErrPostalCode = errors.New("invalid postal code")
	ErrCity       = errors.New("invalid city")
)

// ParseError locates a line that could not be imported.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseRecord builds a PostalCode from the five columns of a data line:
// insee code, city, postal code, label and a fifth line. The last two are
// ignored.
func ParseRecord(fields []string) (model.PostalCode, error) {
	if len(fields) != fieldsPerLine {
		return model.PostalCode{}, fmt.Errorf("%w, got %d", ErrFieldCount, len(fields))
	}

	insee := strings.TrimSpace(fields[0])
	if insee == "" || utf8.RuneCountInString(insee) > maxInseeCodeLen {
		return model.PostalCode{}, fmt.Errorf("%w: %q", ErrInseeCode, insee)
	}

	city := strings.TrimSpace(fields[1])
	if utf8.RuneCountInString(city) > maxCityLen {
		return model.PostalCode{}, fmt.Errorf("%w: longer than %d characters", ErrCity, maxCityLen)
	}

	postal, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return model.PostalCode{}, fmt.Errorf("%w: %q", ErrPostalCode, fields[2])
	}

	return model.PostalCode{InseeCode: insee, PostalCode: postal, City: city}, nil
}

// Parse reads every data line of r. name is only used in errors. Blank lines
// and a leading column header are skipped; any other malformed line stops
// the parse. Fields are split on the delimiter as is: quotes carry no
// meaning.
func Parse(r io.Reader, name string) ([]model.PostalCode, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLen)

	var codes []model.PostalCode
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimRight(sc.Text(), "\r")
		if line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, delimiter)
		if line == 1 && isHeader(fields[0]) {
			continue
		}

		p, err := ParseRecord(fields)
		if err != nil {
			return nil, &ParseError{File: name, Line: line, Err: err}
		}
		codes = append(codes, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return codes, nil
}

// isHeader reports whether field is the first column title, with or without
// the leading '#' of the La Poste export.
func isHeader(field string) bool {
	field = strings.TrimPrefix(strings.TrimSpace(field), "#")
	return strings.EqualFold(strings.TrimSpace(field), headerField)
}
