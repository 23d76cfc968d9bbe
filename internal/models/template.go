package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/internal/templating"
)

// DocumentTemplate persists a template. Templates are never deleted:
// deactivation flips Status.
type DocumentTemplate struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Code        string         `gorm:"uniqueIndex;size:100;not null" json:"code"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Type        string         `gorm:"size:50;not null;index" json:"type"`
	Body        string         `gorm:"type:text" json:"body"`
	Status      string         `gorm:"size:20;not null;default:'active'" json:"status"`
	Version     string         `gorm:"size:20;not null;default:'1.0'" json:"version"`
	Format      string         `gorm:"size:10;not null;default:'pdf'" json:"format"`
	Header      string         `gorm:"type:text" json:"header,omitempty"`
	Footer      string         `gorm:"type:text" json:"footer,omitempty"`
	PageFormat  string         `gorm:"size:10" json:"page_format,omitempty"`
	Orientation string         `gorm:"size:10" json:"orientation,omitempty"`
	Layout      string         `gorm:"size:20" json:"layout,omitempty"`
	// CreatedByID is zero for builtin templates.
	CreatedByID uint               `gorm:"index" json:"created_by_id"`
	Variables   []DocumentVariable `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"variables"`
}

// GetUserID returns the template author for authorship checks.
func (t *DocumentTemplate) GetUserID() uint {
	return t.CreatedByID
}

// DocumentVariable is one declared variable; Position keeps declaration
// order.
type DocumentVariable struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TemplateID  uint   `gorm:"uniqueIndex:idx_template_variable;not null" json:"template_id"`
	Name        string `gorm:"uniqueIndex:idx_template_variable;size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description,omitempty"`
	Kind        string `gorm:"size:20;not null;default:'text'" json:"type"`
	Required    bool   `gorm:"not null;default:false" json:"obligatoire"`
	Example     string `gorm:"size:255" json:"exemple,omitempty"`
	Position    int    `gorm:"not null;default:0" json:"position"`
}

// Template converts the record. Variables must be loaded in Position order.
func (t *DocumentTemplate) Template() templating.Template {
	vars := make([]templating.Variable, len(t.Variables))
	for i, v := range t.Variables {
		vars[i] = templating.Variable{
			Name:        v.Name,
			Description: v.Description,
			Kind:        templating.VariableKind(v.Kind),
			Required:    v.Required,
			Example:     v.Example,
		}
	}
	return templating.Template{
		ID:          t.ID,
		Code:        t.Code,
		Name:        t.Name,
		Type:        templating.DocumentType(t.Type),
		Body:        t.Body,
		Variables:   vars,
		Status:      templating.Status(t.Status),
		Version:     t.Version,
		Format:      templating.Format(t.Format),
		Header:      t.Header,
		Footer:      t.Footer,
		PageFormat:  templating.PageFormat(t.PageFormat),
		Orientation: templating.Orientation(t.Orientation),
		Layout:      t.Layout,
		CreatedByID: t.CreatedByID,
	}
}

// NewDocumentTemplate builds the record for tpl. IDs are left to the
// caller.
func NewDocumentTemplate(tpl templating.Template) DocumentTemplate {
	vars := make([]DocumentVariable, len(tpl.Variables))
	for i, v := range tpl.Variables {
		vars[i] = DocumentVariable{
			Name:        v.Name,
			Description: v.Description,
			Kind:        string(v.Kind),
			Required:    v.Required,
			Example:     v.Example,
			Position:    i,
		}
	}
	return DocumentTemplate{
		Code:        tpl.Code,
		Name:        tpl.Name,
		Type:        string(tpl.Type),
		Body:        tpl.Body,
		Status:      string(tpl.Status),
		Version:     tpl.Version,
		Format:      string(tpl.Format),
		Header:      tpl.Header,
		Footer:      tpl.Footer,
		PageFormat:  string(tpl.PageFormat),
		Orientation: string(tpl.Orientation),
		Layout:      tpl.Layout,
		CreatedByID: tpl.CreatedByID,
		Variables:   vars,
	}
}
