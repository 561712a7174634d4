// Package store implements the durable customer registry: a plain-text file
// holding one pipe-delimited record per line,
//
//	id|name|password|contact|email
//
// The delimiter and backslash are escaped inside field values (\| and \\),
// so round-trips hold for arbitrary content. Files written before escaping
// existed contain neither sequence and load unchanged.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rmarquet/carfleet/internal/models"
)

const recordFields = 5

// CustomerStore reads and writes the customer store file.
type CustomerStore struct {
	path string
}

// New creates a CustomerStore over the given file path.
func New(path string) *CustomerStore {
	return &CustomerStore{path: path}
}

// Save overwrites the store file with the full customer set, one record per
// line in registry order. The rewrite is not atomic; a crash mid-write can
// truncate the store.
func (s *CustomerStore) Save(customers []*models.Customer) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create store file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, c := range customers {
		fields := []string{c.CustomerID, c.DisplayName, c.Password, c.Contact, c.Email}
		for i := range fields {
			fields[i] = escape(fields[i])
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, "|")); err != nil {
			f.Close()
			return fmt.Errorf("write store file: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush store file: %w", err)
	}
	return f.Close()
}

// Load reads the store file and reconstructs the persisted customers with
// their stored ids. A missing file is a normal first run and yields an empty
// set. Blank lines are skipped; lines that do not split into exactly five
// fields are skipped with a warning so the data loss is diagnosable.
func (s *CustomerStore) Load() ([]*models.Customer, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open store file: %w", err)
	}
	defer f.Close()

	var customers []*models.Customer
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitRecord(line)
		if len(fields) != recordFields {
			log.Warn().
				Str("file", s.path).
				Int("line", lineNo).
				Int("fields", len(fields)).
				Msg("Skipping malformed customer record")
			continue
		}
		customers = append(customers, &models.Customer{
			CustomerID:  fields[0],
			DisplayName: fields[1],
			Password:    fields[2],
			Contact:     fields[3],
			Email:       fields[4],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	return customers, nil
}

func escape(field string) string {
	field = strings.ReplaceAll(field, `\`, `\\`)
	return strings.ReplaceAll(field, "|", `\|`)
}

// splitRecord splits a record on unescaped pipes and resolves the escape
// sequences inside each field.
func splitRecord(line string) []string {
	var fields []string
	var cur strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		// Trailing lone backslash, keep it literal.
		cur.WriteByte('\\')
	}
	return append(fields, cur.String())
}
