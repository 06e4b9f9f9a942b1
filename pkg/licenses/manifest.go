package licenses

import (
	"encoding/csv"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/devtasks/pkg/constants"
	"github.com/agentstation/devtasks/pkg/errors"
)

// Manifest is an ordered list of license entries with set semantics on
// the row string.
type Manifest struct {
	Entries []Entry `json:"entries" yaml:"entries"`
}

// NewManifest returns a manifest holding entries sorted by row string,
// without duplicates.
func NewManifest(entries []Entry) *Manifest {
	return &Manifest{Entries: Sort(entries)}
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.Entries)
}

// Contains reports whether the manifest holds a row equal to e.
func (m *Manifest) Contains(e Entry) bool {
	for _, have := range m.Entries {
		if have.Key() == e.Key() {
			return true
		}
	}
	return false
}

// Write writes the header followed by one row per entry, sorted, each
// terminated by a newline.
func (m *Manifest) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(constants.LicenseHeader, ",")); err != nil {
		return err
	}
	for _, e := range Sort(m.Entries) {
		if err := cw.Write(e.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadManifest reads the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	m, err := parseManifest(f, path)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ParseManifest parses a manifest from r. Entries keep the order in which
// they appear. A row with an empty license field is rejected with a
// MalformedEntryError.
func ParseManifest(r io.Reader) (*Manifest, error) {
	return parseManifest(r, "")
}

func parseManifest(r io.Reader, file string) (*Manifest, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &errors.ParseError{Format: "csv", File: file, Line: 1, Message: "missing header row"}
	}
	if err != nil {
		return nil, csvError(file, err)
	}
	if strings.Join(header, ",") != constants.LicenseHeader {
		return nil, &errors.ParseError{
			Format:  "csv",
			File:    file,
			Line:    1,
			Column:  1,
			Message: "unexpected header " + strings.Join(header, ",") + ", want " + constants.LicenseHeader,
		}
	}

	m := &Manifest{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(file, err)
		}

		e := Entry{Scope: record[0], Origin: record[1], License: record[2]}
		if e.License == "" {
			line, _ := cr.FieldPos(0)
			return nil, &errors.MalformedEntryError{
				File:    file,
				Line:    line,
				Origin:  e.Origin,
				Message: "has an empty license",
			}
		}
		m.Entries = append(m.Entries, e)
	}
	return m, nil
}

func csvError(file string, err error) error {
	var pe *csv.ParseError
	if stderrors.As(err, &pe) {
		return &errors.ParseError{
			Format:  "csv",
			File:    file,
			Line:    pe.Line,
			Column:  pe.Column,
			Message: pe.Err.Error(),
			Err:     err,
		}
	}
	return errors.WrapParse("csv", file, err)
}

// WriteManifest replaces the manifest at path. The content goes to a
// temporary file in the same directory first, so the previous manifest
// survives any failure.
func WriteManifest(path string, m *Manifest) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = m.Write(tmp); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", path, err)
	}
	if err = tmp.Chmod(constants.FilePermissions); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", path, err)
	}
	if err = tmp.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
