// Package forms loads form documents and turns their elements into styled
// targets and stylesheets.
package forms

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"fstyle/common"
	"fstyle/styles"
)

// Element is a single form element as authored on the server.
type Element struct {
	ID           string           `yaml:"id"`
	Kind         common.FieldKind `yaml:"kind"`
	Styles       styles.Props     `yaml:"styles"`
	MobileStyles styles.Props     `yaml:"mobile_styles"`
}

// Form is an ordered list of elements.
type Form struct {
	Name     string
	Elements []Element
}

// document is the on disk shape. Elements could be given either as a list or
// as a map keyed by element id.
type document struct {
	Name     string    `yaml:"name"`
	Elements yaml.Node `yaml:"elements"`
}

// Load reads form document from file. JSON documents are accepted as well.
// When document does not name the form, file name is used.
func Load(path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read form: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	f, err := Parse(data, name)
	if err != nil {
		return nil, fmt.Errorf("unable to load form '%s': %w", path, err)
	}
	return f, nil
}

// Parse decodes form document. defaultName is used when document does not
// have a name. All problems with individual elements are reported together.
func Parse(data []byte, defaultName string) (*Form, error) {
	var doc document

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode form document: %w", err)
	}

	f := &Form{Name: strings.TrimSpace(doc.Name)}
	if f.Name == "" {
		f.Name = defaultName
	}
	if f.Name == "" {
		return nil, errors.New("form has no name")
	}

	elements, err := decodeElements(&doc.Elements)
	if err != nil {
		return nil, err
	}
	f.Elements = elements

	if err := f.normalize(); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeElements(node *yaml.Node) ([]Element, error) {
	switch node.Kind {
	case 0:
		// no elements
		return nil, nil

	case yaml.SequenceNode:
		var list []Element
		if err := node.Decode(&list); err != nil {
			return nil, fmt.Errorf("failed to decode elements: %w", err)
		}
		return list, nil

	case yaml.MappingNode:
		var byID map[string]Element
		if err := node.Decode(&byID); err != nil {
			return nil, fmt.Errorf("failed to decode elements: %w", err)
		}
		keys := make([]string, 0, len(byID))
		for k := range byID {
			keys = append(keys, k)
		}
		sort.Sort(natural.StringSlice(keys))

		var errs error
		list := make([]Element, 0, len(keys))
		for _, k := range keys {
			el := byID[k]
			switch {
			case el.ID == "":
				el.ID = k
			case el.ID != k:
				errs = multierr.Append(errs, fmt.Errorf("element '%s' has mismatching id '%s'", k, el.ID))
			}
			list = append(list, el)
		}
		return list, errs

	default:
		return nil, fmt.Errorf("line %d: elements must be a list or a map", node.Line)
	}
}

// normalize assigns missing ids, validates kinds and style values and makes
// sure every element ends up with its own class name.
func (f *Form) normalize() error {
	var (
		errs    error
		classes = make(map[string]string, len(f.Elements))
	)
	for i := range f.Elements {
		el := &f.Elements[i]

		el.ID = strings.TrimSpace(el.ID)
		if el.ID == "" {
			el.ID = ElementID(f.Name, i)
		}

		kind, err := common.ParseFieldKind(string(el.Kind))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("element '%s': %w", el.ID, err))
		}
		el.Kind = kind

		errs = multierr.Append(errs, checkProps(el.ID, "styles", el.Styles))
		errs = multierr.Append(errs, checkProps(el.ID, "mobile_styles", el.MobileStyles))

		base := slug.Make(el.ID)
		if other, exists := classes[base]; exists {
			errs = multierr.Append(errs, fmt.Errorf("element '%s' clashes with element '%s'", el.ID, other))
			continue
		}
		classes[base] = el.ID
	}
	return errs
}

func checkProps(id, what string, props styles.Props) error {
	var errs error
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	for _, name := range names {
		switch props[name].(type) {
		case map[string]any, []any:
			errs = multierr.Append(errs, fmt.Errorf("element '%s': %s property '%s' must be a scalar", id, what, name))
		}
	}
	return errs
}

// ElementID returns stable id for element without one: name based UUID of form
// name and element position.
func ElementID(form string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, fmt.Appendf(nil, "fstyle:form/%s/%d", form, index)).String()
}
