package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/athul0622-dotcom/local-service/internal/domain/entities"
	"github.com/athul0622-dotcom/local-service/internal/domain/repositories"
	"github.com/athul0622-dotcom/local-service/pkg/retry"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/catalog.json
var embeddedCatalog []byte

type document struct {
	Providers []*entities.Provider `json:"providers"`
	Reviews   []*entities.Review   `json:"reviews"`
}

// JSONSource reads the catalog from a JSON document. The document is parsed
// once and cached.
type JSONSource struct {
	read func() ([]byte, error)

	once sync.Once
	doc  *document
	err  error
}

var _ repositories.CatalogSource = (*JSONSource)(nil)

// NewEmbeddedSource returns a source over the catalog bundled with the binary
func NewEmbeddedSource() *JSONSource {
	return NewBytesSource(embeddedCatalog)
}

// NewFileSource returns a source that reads the catalog from path
func NewFileSource(path string) *JSONSource {
	return &JSONSource{read: func() ([]byte, error) {
		return os.ReadFile(path)
	}}
}

// NewBytesSource returns a source over an in-memory document
func NewBytesSource(data []byte) *JSONSource {
	return &JSONSource{read: func() ([]byte, error) {
		return data, nil
	}}
}

// LoadProviders returns providers in document order
func (s *JSONSource) LoadProviders(ctx context.Context) ([]*entities.Provider, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Providers, nil
}

// LoadReviews returns the seed reviews in document order
func (s *JSONSource) LoadReviews(ctx context.Context) ([]*entities.Review, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Reviews, nil
}

func (s *JSONSource) load() (*document, error) {
	s.once.Do(func() {
		s.doc, s.err = s.parse()
	})
	return s.doc, s.err
}

func (s *JSONSource) parse() (*document, error) {
	data, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	if err := Validate(data); err != nil {
		return nil, retry.Permanent(err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, retry.Permanent(fmt.Errorf("failed to decode catalog: %w", err))
	}
	if doc.Reviews == nil {
		doc.Reviews = []*entities.Review{}
	}
	return &doc, nil
}

// Validate checks a catalog document against the catalog schema
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(catalogSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("catalog is not valid JSON: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("catalog failed validation: %s", strings.Join(msgs, "; "))
	}
	return nil
}
