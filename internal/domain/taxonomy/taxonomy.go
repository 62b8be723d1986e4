// Package taxonomy holds the canonical skill keywords and academic branch
// names. A Taxonomy is immutable once built; accessors return copies.
package taxonomy

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/taxonomy.yaml
var defaultData []byte

// Category is a named group of skills, in file order.
type Category struct {
	Name   string
	Skills []string
}

// Taxonomy is the fixed reference list of recognised skills and branches.
type Taxonomy struct {
	categories []Category
	branches   []string
}

// New builds a taxonomy from categories and branches. Inputs are copied.
func New(categories []Category, branches []string) *Taxonomy {
	t := &Taxonomy{
		categories: make([]Category, 0, len(categories)),
		branches:   append([]string(nil), branches...),
	}
	for _, c := range categories {
		t.categories = append(t.categories, Category{Name: c.Name, Skills: append([]string(nil), c.Skills...)})
	}
	return t
}

// FromSkills builds a single-category taxonomy, mostly for tests and ad-hoc extraction.
func FromSkills(skills ...string) *Taxonomy {
	return New([]Category{{Name: "skills", Skills: skills}}, nil)
}

// AllSkills flattens all categories in order. Duplicates across categories are kept.
func (t *Taxonomy) AllSkills() []string {
	if t == nil {
		return nil
	}
	var out []string
	for _, c := range t.categories {
		out = append(out, c.Skills...)
	}
	return out
}

// Categories returns a copy of the categories.
func (t *Taxonomy) Categories() []Category {
	if t == nil {
		return nil
	}
	return New(t.categories, nil).categories
}

// Branches returns the academic branch names.
func (t *Taxonomy) Branches() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.branches...)
}

// Validate reports empty skill or branch lists. Both problems are returned
// joined, each wrapping ErrConfiguration.
func (t *Taxonomy) Validate() error {
	var errs []error
	if len(nonBlank(t.AllSkills())) == 0 {
		errs = append(errs, ErrEmptyTaxonomy)
	}
	if len(nonBlank(t.Branches())) == 0 {
		errs = append(errs, ErrEmptyBranches)
	}
	return errors.Join(errs...)
}

// Default returns the taxonomy embedded in the binary.
func Default() *Taxonomy {
	t, err := Parse(defaultData)
	if err != nil {
		panic(fmt.Sprintf("embedded taxonomy is invalid: %v", err))
	}
	return t
}

// Load reads a combined taxonomy file (YAML or JSON):
//
//	skills:
//	  languages: [Go, Python]
//	engineering_branches_india: [Computer Science, ...]
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return Parse(data)
}

// LoadFiles reads a skills file whose top level maps category to skill list
// and a branches file holding engineering_branches_india. Either path may be
// empty.
func LoadFiles(skillsPath, branchesPath string) (*Taxonomy, error) {
	var cats []Category
	if skillsPath != "" {
		data, err := os.ReadFile(skillsPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoad, skillsPath, err)
		}
		if cats, err = decodeCategories(documentRoot(&root)); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoad, skillsPath, err)
		}
	}

	var branches []string
	if branchesPath != "" {
		data, err := os.ReadFile(branchesPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
		var file struct {
			Branches []string `yaml:"engineering_branches_india"`
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoad, branchesPath, err)
		}
		branches = file.Branches
	}
	return New(cats, branches), nil
}

// Parse decodes a combined taxonomy document.
func Parse(data []byte) (*Taxonomy, error) {
	var file struct {
		Skills   yaml.Node `yaml:"skills"`
		Branches []string  `yaml:"engineering_branches_india"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	cats, err := decodeCategories(&file.Skills)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return New(cats, file.Branches), nil
}

func documentRoot(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return n.Content[0]
	}
	return n
}

// decodeCategories walks a mapping node so category order follows the file.
func decodeCategories(n *yaml.Node) ([]Category, error) {
	if n == nil || n.Kind == 0 {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("skills must be a mapping of category to list (line %d)", n.Line)
	}
	cats := make([]Category, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		var skills []string
		if err := n.Content[i+1].Decode(&skills); err != nil {
			return nil, fmt.Errorf("category %q: %w", n.Content[i].Value, err)
		}
		cats = append(cats, Category{Name: n.Content[i].Value, Skills: skills})
	}
	return cats, nil
}

func nonBlank(in []string) []string {
	out := in[:0:0]
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
