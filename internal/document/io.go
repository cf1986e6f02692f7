package document

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/khrees2412/cvgen/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed document.schema.json
var schemaJSON []byte

// ErrInvalidDocument is wrapped by every schema violation reported by Load.
var ErrInvalidDocument = errors.New("invalid CV document")

// Validate checks raw JSON against the document schema.
func Validate(data []byte) error {
	res, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
}

// Load reads, validates and decodes a document. Missing sequences decode as empty.
func Load(r io.Reader) (models.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to read document: %w", err)
	}
	if err := Validate(data); err != nil {
		return models.Document{}, err
	}

	doc := Empty()
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	normalize(&doc)
	return doc, nil
}

// LoadFile is Load on a path.
func LoadFile(path string) (models.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc models.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}

// normalize replaces null sequences so rendering never sees nil.
func normalize(doc *models.Document) {
	if doc.Experience == nil {
		doc.Experience = []models.Experience{}
	}
	if doc.Education == nil {
		doc.Education = []models.Education{}
	}
	if doc.Skills == nil {
		doc.Skills = []models.Skill{}
	}
	if doc.Projects == nil {
		doc.Projects = []models.Project{}
	}
	for i := range doc.Projects {
		if doc.Projects[i].Technologies == nil {
			doc.Projects[i].Technologies = []string{}
		}
	}
	if doc.Languages == nil {
		doc.Languages = []models.Language{}
	}
}
