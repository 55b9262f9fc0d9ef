// Package common keeps enums shared between configuration, form documents
// and the style engine.
package common

import (
	"fmt"
	"strings"
)

// Kind of form element.
type FieldKind string

const (
	FieldKindText      FieldKind = "text"
	FieldKindTextarea  FieldKind = "textarea"
	FieldKindDropdown  FieldKind = "dropdown"
	FieldKindButton    FieldKind = "button"
	FieldKindCheckbox  FieldKind = "checkbox"
	FieldKindSignature FieldKind = "signature"
	FieldKindImage     FieldKind = "image"
	FieldKindContainer FieldKind = "container"
)

var fieldKinds = []FieldKind{
	FieldKindText,
	FieldKindTextarea,
	FieldKindDropdown,
	FieldKindButton,
	FieldKindCheckbox,
	FieldKindSignature,
	FieldKindImage,
	FieldKindContainer,
}

// FieldKindNames returns list of possible string values of FieldKind.
func FieldKindNames() []string {
	names := make([]string, 0, len(fieldKinds))
	for _, k := range fieldKinds {
		names = append(names, string(k))
	}
	return names
}

// ParseFieldKind attempts to convert a string to a FieldKind, case
// insensitive.
func ParseFieldKind(name string) (FieldKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range fieldKinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("%s is not a valid FieldKind, try [%s]", name, strings.Join(FieldKindNames(), ", "))
}

func (k FieldKind) String() string {
	return string(k)
}

// IsMultiline is true for elements with multiline text box.
func (k FieldKind) IsMultiline() bool {
	return k == FieldKindTextarea
}

// HasPlaceholder is true for elements rendering placeholder text.
func (k FieldKind) HasPlaceholder() bool {
	switch k {
	case FieldKindText, FieldKindTextarea, FieldKindDropdown:
		return true
	}
	return false
}

// Placeholder behavior when field gets focus.
type PlaceholderTransition string

const (
	PlaceholderTransitionNone      PlaceholderTransition = "none"
	PlaceholderTransitionShrinkTop PlaceholderTransition = "shrink_top"
)

// Placement of element background image.
type BackgroundDisplay string

const (
	BackgroundDisplayFill     BackgroundDisplay = "fill"
	BackgroundDisplayFit      BackgroundDisplay = "fit"
	BackgroundDisplayTile     BackgroundDisplay = "tile"
	BackgroundDisplaySetScale BackgroundDisplay = "set_scale"
)
