// Package templating holds document templates, their variable declarations,
// placeholder substitution and required-variable validation.
package templating

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DocumentType tags the kind of document a template produces.
type DocumentType string

const (
	TypeInvoice        DocumentType = "facture"
	TypeBookingVoucher DocumentType = "bon_reservation"
	TypeExtension      DocumentType = "prolongation"
	TypeTermination    DocumentType = "fin_prise_charge"
)

// DocumentTypes lists every supported type in display order.
var DocumentTypes = []DocumentType{TypeInvoice, TypeBookingVoucher, TypeExtension, TypeTermination}

func (t DocumentType) Valid() bool { return slices.Contains(DocumentTypes, t) }

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool { return s == StatusActive || s == StatusInactive }

// Format is the output format a template is rendered to.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
)

func (f Format) Valid() bool { return f == FormatPDF || f == FormatDOCX || f == FormatHTML }

// PageFormat names a physical page size.
type PageFormat string

const (
	PageA4     PageFormat = "A4"
	PageA3     PageFormat = "A3"
	PageLetter PageFormat = "Letter"
)

type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// LayoutBody forces the block body rendering even when a richer layout
// exists for the document type.
const LayoutBody = "body"

// VariableKind is the semantic type of a declared variable.
type VariableKind string

const (
	KindText     VariableKind = "text"
	KindNumber   VariableKind = "number"
	KindDate     VariableKind = "date"
	KindEmail    VariableKind = "email"
	KindPhone    VariableKind = "phone"
	KindAddress  VariableKind = "address"
	KindCurrency VariableKind = "currency"
)

var variableKinds = []VariableKind{KindText, KindNumber, KindDate, KindEmail, KindPhone, KindAddress, KindCurrency}

func (k VariableKind) Valid() bool { return slices.Contains(variableKinds, k) }

// Variable declares one placeholder of a template.
type Variable struct {
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description" json:"description,omitempty"`
	Kind        VariableKind `yaml:"type" json:"type"`
	Required    bool         `yaml:"obligatoire" json:"obligatoire"`
	Example     string       `yaml:"exemple" json:"exemple,omitempty"`
}

// Template is a document template. Code is its stable identifier inside a
// registry; ID is the storage key once persisted.
type Template struct {
	ID          uint         `yaml:"-" json:"id"`
	Code        string       `yaml:"code" json:"code"`
	Name        string       `yaml:"name" json:"name"`
	Type        DocumentType `yaml:"type" json:"type"`
	Body        string       `yaml:"body" json:"body"`
	Variables   []Variable   `yaml:"variables" json:"variables"`
	Status      Status       `yaml:"status" json:"status"`
	Version     string       `yaml:"version" json:"version"`
	Format      Format       `yaml:"format" json:"format"`
	Header      string       `yaml:"header" json:"header,omitempty"`
	Footer      string       `yaml:"footer" json:"footer,omitempty"`
	PageFormat  PageFormat   `yaml:"page_format" json:"page_format,omitempty"`
	Orientation Orientation  `yaml:"orientation" json:"orientation,omitempty"`
	Layout      string       `yaml:"layout" json:"layout,omitempty"`
	CreatedByID uint         `yaml:"-" json:"created_by_id,omitempty"`
}

func (t Template) Active() bool { return t.Status == StatusActive }

// GetUserID returns the author, zero for builtin templates.
func (t Template) GetUserID() uint { return t.CreatedByID }

// Variable returns the declaration for name.
func (t Template) Variable(name string) (Variable, bool) {
	for _, v := range t.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Placeholders returns the distinct placeholder names used by the body,
// header and footer, in order of first appearance.
func (t Template) Placeholders() []string {
	var names []string
	for _, part := range []string{t.Body, t.Header, t.Footer} {
		for _, name := range Placeholders(part) {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	return names
}

// Undeclared returns placeholders that have no variable declaration.
// Date tokens always resolve and are never reported.
func (t Template) Undeclared() []string {
	var out []string
	for _, name := range t.Placeholders() {
		if IsDateToken(name) {
			continue
		}
		if _, ok := t.Variable(name); !ok {
			out = append(out, name)
		}
	}
	return out
}

// Unused returns declared variables the template never references.
func (t Template) Unused() []string {
	used := t.Placeholders()
	var out []string
	for _, v := range t.Variables {
		if !slices.Contains(used, v.Name) {
			out = append(out, v.Name)
		}
	}
	return out
}

// Check validates the template fields and the body/variable consistency.
func (t Template) Check() error {
	var errs []error
	if strings.TrimSpace(t.Code) == "" {
		errs = append(errs, fmt.Errorf("%w: code is required", ErrInvalidTemplate))
	}
	if strings.TrimSpace(t.Name) == "" {
		errs = append(errs, fmt.Errorf("%w: name is required", ErrInvalidTemplate))
	}
	if !t.Type.Valid() {
		errs = append(errs, fmt.Errorf("%w: unknown document type %q", ErrInvalidTemplate, t.Type))
	}
	if !t.Status.Valid() {
		errs = append(errs, fmt.Errorf("%w: unknown status %q", ErrInvalidTemplate, t.Status))
	}
	if !t.Format.Valid() {
		errs = append(errs, fmt.Errorf("%w: unknown format %q", ErrInvalidTemplate, t.Format))
	}
	seen := make(map[string]bool, len(t.Variables))
	for _, v := range t.Variables {
		if !placeholderName.MatchString(v.Name) {
			errs = append(errs, fmt.Errorf("%w: invalid variable name %q", ErrInvalidTemplate, v.Name))
		}
		if seen[v.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate variable %q", ErrInvalidTemplate, v.Name))
		}
		seen[v.Name] = true
		if v.Kind != "" && !v.Kind.Valid() {
			errs = append(errs, fmt.Errorf("%w: variable %q has unknown type %q", ErrInvalidTemplate, v.Name, v.Kind))
		}
	}
	if missing := t.Undeclared(); len(missing) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrUndeclaredPlaceholder, strings.Join(missing, ", ")))
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy.
func (t Template) Clone() Template {
	t.Variables = slices.Clone(t.Variables)
	return t
}

// Uncovered returns declared variables whose name is not in keys. Callers
// pass the key set a mapper guarantees for the template's document type.
func Uncovered(t Template, keys []string) []string {
	var out []string
	for _, v := range t.Variables {
		if !slices.Contains(keys, v.Name) {
			out = append(out, v.Name)
		}
	}
	return out
}
