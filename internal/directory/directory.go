// Package directory holds the bundled catalog datasets and validates them against
// their JSON schemas before they are decoded.
package directory

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/*.json schema/*.schema.json
var files embed.FS

// Dataset names one bundled JSON document.
type Dataset string

const (
	Startups     Dataset = "startups"
	Investors    Dataset = "investors"
	Stories      Dataset = "stories"
	Partnerships Dataset = "partnerships"
	GrowthTools  Dataset = "growthtools"
)

// ErrUnknownDataset is returned for names without a bundled schema.
var ErrUnknownDataset = errors.New("directory: unknown dataset")

// ValidationError lists schema violations found in a dataset.
type ValidationError struct {
	Dataset  Dataset
	Problems []string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("directory: %s failed validation: %s", e.Dataset, strings.Join(e.Problems, "; "))
}

var schemas sync.Map // Dataset -> *gojsonschema.Schema

// Datasets lists every bundled dataset.
func Datasets() []Dataset {
	return []Dataset{Startups, Investors, Stories, Partnerships, GrowthTools}
}

// Load validates the bundled dataset and decodes it into v.
func Load(name Dataset, v any) error {
	raw, err := Raw(name)
	if err != nil {
		return err
	}
	return Decode(name, raw, v)
}

// Raw returns the bundled bytes of a dataset.
func Raw(name Dataset) ([]byte, error) {
	raw, err := files.ReadFile("data/" + string(name) + ".json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, name)
		}
		return nil, fmt.Errorf("read dataset %s: %w", name, err)
	}
	return raw, nil
}

// Decode validates raw against the schema for name and unmarshals it into v.
func Decode(name Dataset, raw []byte, v any) error {
	if err := Validate(name, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode dataset %s: %w", name, err)
	}
	return nil
}

// Validate checks raw against the schema bundled for name.
func Validate(name Dataset, raw []byte) error {
	schema, err := schemaFor(name)
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validate dataset %s: %w", name, err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		problems[i] = desc.String()
	}
	return &ValidationError{Dataset: name, Problems: problems}
}

func schemaFor(name Dataset) (*gojsonschema.Schema, error) {
	if cached, ok := schemas.Load(name); ok {
		return cached.(*gojsonschema.Schema), nil
	}
	raw, err := files.ReadFile("schema/" + string(name) + ".schema.json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, name)
		}
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	actual, _ := schemas.LoadOrStore(name, schema)
	return actual.(*gojsonschema.Schema), nil
}
