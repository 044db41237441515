// Package fixture loads parameterization datasets: relaxed JSON files (comments
// and trailing commas allowed) holding an array of flat records.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	json "github.com/json-iterator/go"
	"github.com/tailscale/hujson"

	"contact-list-e2e/internal/models"
)

// NotFoundError reports a dataset file that does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("fixture %s not found: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError reports a dataset that is not an array of flat records.
type ParseError struct {
	Path string
	// Index is the offending record, -1 when the file as a whole is malformed.
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("fixture %s: record %d: %v", e.Path, e.Index, e.Err)
	}
	return fmt.Sprintf("fixture %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Record is one flat entry of a dataset.
type Record struct {
	Path   string
	Index  int
	values map[string]any
}

// Load reads and parses the dataset at path.
func Load(path string) ([]Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	return Parse(path, raw)
}

// Parse decodes a dataset already in memory; path is only used in errors.
func Parse(path string, raw []byte) ([]Record, error) {
	std, err := hujson.Standardize(raw)
	if err != nil {
		return nil, &ParseError{Path: path, Index: -1, Err: err}
	}

	var top any
	if err := json.Unmarshal(bytes.TrimSpace(std), &top); err != nil {
		return nil, &ParseError{Path: path, Index: -1, Err: err}
	}
	items, ok := top.([]any)
	if !ok {
		return nil, &ParseError{Path: path, Index: -1, Err: fmt.Errorf("top level is %s, want array", kindOf(top))}
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &ParseError{Path: path, Index: i, Err: fmt.Errorf("record is %s, want object", kindOf(item))}
		}
		for k, v := range obj {
			switch v.(type) {
			case map[string]any, []any:
				return nil, &ParseError{Path: path, Index: i, Err: fmt.Errorf("field %q is %s, records must be flat", k, kindOf(v))}
			}
		}
		records = append(records, Record{Path: path, Index: i, values: obj})
	}
	return records, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "an array"
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	}
	return fmt.Sprintf("%T", v)
}

// String returns the value of key as text. Absent and null values are "".
func (r Record) String(key string) string {
	switch v := r.values[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Has reports whether key is present, even when null.
func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the record's keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r Record) field(f models.Field) string { return r.String(f.Key()) }

func (r Record) Contact() models.Contact {
	return models.Contact{
		FirstName:     r.field(models.FieldFirstName),
		LastName:      r.field(models.FieldLastName),
		Birthdate:     r.field(models.FieldBirthdate),
		Email:         r.field(models.FieldEmail),
		Phone:         r.field(models.FieldPhone),
		Street1:       r.field(models.FieldStreet1),
		Street2:       r.field(models.FieldStreet2),
		City:          r.field(models.FieldCity),
		StateProvince: r.field(models.FieldStateProvince),
		PostalCode:    r.field(models.FieldPostalCode),
		Country:       r.field(models.FieldCountry),
	}
}

func (r Record) Credentials() models.Credentials {
	return models.Credentials{
		Email:    r.field(models.FieldEmail),
		Password: r.field(models.FieldPassword),
	}
}

func (r Record) Registration() models.Registration {
	return models.Registration{
		FirstName: r.field(models.FieldFirstName),
		LastName:  r.field(models.FieldLastName),
		Email:     r.field(models.FieldEmail),
		Password:  r.field(models.FieldPassword),
	}
}

// Name is a stable subtest name: the record position and, when present, its email.
func (r Record) Name() string {
	name := fmt.Sprintf("%s#%02d", strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path)), r.Index)
	if email := r.field(models.FieldEmail); email != "" {
		name += "_" + email
	}
	return name
}

// Validate rejects keys that are not one of fields.
func (r Record) Validate(fields []models.Field) error {
	allowed := make(map[string]bool, len(fields))
	for _, f := range fields {
		allowed[f.Key()] = true
	}
	for _, k := range r.Keys() {
		if !allowed[k] {
			return &ParseError{Path: r.Path, Index: r.Index, Err: fmt.Errorf("unknown field %q", k)}
		}
	}
	return nil
}

// Loader reads each dataset from a directory at most once.
type Loader struct {
	dir   string
	mu    sync.Mutex
	cache map[string][]Record
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir, cache: map[string][]Record{}}
}

// Load returns the records of name, relative to the loader's directory.
// Failures are not cached.
func (l *Loader) Load(name string) ([]Record, error) {
	path := filepath.Join(l.dir, name)

	l.mu.Lock()
	defer l.mu.Unlock()
	if records, ok := l.cache[path]; ok {
		return records, nil
	}
	records, err := Load(path)
	if err != nil {
		return nil, err
	}
	l.cache[path] = records
	return records, nil
}
