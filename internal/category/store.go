package category

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ytget/doc-sorter/internal/model"
	"github.com/ytget/doc-sorter/internal/platform"
)

// FileName is the category file created next to the program
const FileName = "categories.yaml"

// DefaultName is the label of the category created on first run
const DefaultName = "Uncategorized"

const fileHeader = "# doc-sorter categories\n# One \"name: destination directory\" pair per line.\n\n"

// Validation failures returned by Add
var (
	ErrEmptyName     = fmt.Errorf("%w: category name is required", model.ErrValidation)
	ErrDuplicateName = fmt.Errorf("%w: category already exists", model.ErrValidation)
	ErrEmptyPath     = fmt.Errorf("%w: category directory is required", model.ErrValidation)
	ErrReadOnly      = fmt.Errorf("%w: category file could not be read, changes are not saved", model.ErrConfig)
)

// Store is an ordered, append-only set of categories backed by a file
type Store struct {
	path       string
	categories []model.Category
	index      map[string]int
	readOnly   bool
}

// Load reads the category file at path. A missing or empty file is replaced
// by a store holding only the default category, which is written to disk
// before Load returns.
func Load(path string) (*Store, error) {
	s := &Store{path: path, index: make(map[string]int)}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: reading %s: %w", model.ErrConfig, path, err)
	}

	if len(bytes.TrimSpace(data)) > 0 {
		categories, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %w", model.ErrConfig, path, err)
		}
		if len(categories) > 0 {
			for _, c := range categories {
				s.append(c)
			}
			return s, nil
		}
	}

	s.append(defaultCategory(path))
	if err := s.save(); err != nil {
		return nil, fmt.Errorf("%w: writing default %s: %w", model.ErrConfig, path, err)
	}
	return s, nil
}

// Fallback returns an in-memory store holding only the default category. It
// is used when the file at path exists but cannot be parsed, and refuses to
// overwrite it.
func Fallback(path string) *Store {
	s := &Store{path: path, index: make(map[string]int), readOnly: true}
	s.append(defaultCategory(path))
	return s
}

func defaultCategory(path string) model.Category {
	return model.Category{
		Name: DefaultName,
		Path: filepath.Join(filepath.Dir(path), DefaultName),
	}
}

// Add appends a category and persists the store immediately
func (s *Store) Add(name, dir string) ([]model.Category, error) {
	name = strings.TrimSpace(name)
	dir = strings.TrimSpace(dir)

	if name == "" {
		return nil, ErrEmptyName
	}
	if _, exists := s.index[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if dir == "" {
		return nil, ErrEmptyPath
	}
	if s.readOnly {
		return nil, ErrReadOnly
	}

	s.append(model.Category{Name: name, Path: dir})
	if err := s.save(); err != nil {
		s.removeLast()
		return nil, fmt.Errorf("%w: saving %s: %w", model.ErrConfig, s.path, err)
	}
	return s.Categories(), nil
}

// Categories returns a copy of the categories in insertion order
func (s *Store) Categories() []model.Category {
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Names returns category names in insertion order
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.categories))
	for _, c := range s.categories {
		names = append(names, c.Name)
	}
	return names
}

// Lookup returns the category with exactly this name
func (s *Store) Lookup(name string) (model.Category, bool) {
	i, ok := s.index[name]
	if !ok {
		return model.Category{}, false
	}
	return s.categories[i], true
}

// Default returns the uncategorized entry, or the first category when the
// file no longer holds one
func (s *Store) Default() model.Category {
	for _, c := range s.categories {
		if IsDefaultName(c.Name) {
			return c
		}
	}
	return s.categories[0]
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// ReadOnly reports whether additions are refused
func (s *Store) ReadOnly() bool {
	return s.readOnly
}

// IsDefaultName reports whether name is the uncategorized label, ignoring case
func IsDefaultName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), DefaultName)
}

func (s *Store) append(c model.Category) {
	s.index[c.Name] = len(s.categories)
	s.categories = append(s.categories, c)
}

func (s *Store) removeLast() {
	last := s.categories[len(s.categories)-1]
	delete(s.index, last.Name)
	s.categories = s.categories[:len(s.categories)-1]
}

func (s *Store) save() error {
	data, err := encode(s.categories)
	if err != nil {
		return err
	}
	return platform.WriteFileAtomic(s.path, data)
}

func parse(data []byte) ([]model.Category, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("expected a mapping of category names to directories")
	}

	seen := make(map[string]bool)
	categories := make([]model.Category, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: category entries must be plain name: path pairs", key.Line)
		}
		name := strings.TrimSpace(key.Value)
		dir := strings.TrimSpace(value.Value)
		if name == "" {
			return nil, fmt.Errorf("line %d: empty category name", key.Line)
		}
		if value.Tag == "!!null" || dir == "" {
			return nil, fmt.Errorf("line %d: category %q has no directory", key.Line, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("line %d: duplicate category %q", key.Line, name)
		}
		seen[name] = true
		categories = append(categories, model.Category{Name: name, Path: dir})
	}
	return categories, nil
}

func encode(categories []model.Category) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range categories {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Path},
		)
	}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	enc := yaml.NewEncoder(&buf)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
