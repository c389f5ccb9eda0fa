package domain

import "time"

type TemplateCategory string

const (
	CategoryMarketing      TemplateCategory = "marketing"
	CategoryTransactional  TemplateCategory = "transactional"
	CategoryAuthentication TemplateCategory = "authentication"
	CategoryUtility        TemplateCategory = "utility"
)

func (c TemplateCategory) IsValid() bool {
	switch c {
	case CategoryMarketing, CategoryTransactional, CategoryAuthentication, CategoryUtility:
		return true
	}
	return false
}

type HeaderType string

const (
	HeaderText  HeaderType = "text"
	HeaderMedia HeaderType = "media"
)

// TemplateHeader is either literal text (which may hold variables) or a
// reference to a media asset.
type TemplateHeader struct {
	Type    HeaderType `json:"type"`
	Content string     `json:"content"`
}

type ButtonKind string

const (
	ButtonQuickReply  ButtonKind = "quick_reply"
	ButtonURL         ButtonKind = "url"
	ButtonPhoneNumber ButtonKind = "phone_number"
)

func (k ButtonKind) IsValid() bool {
	return k == ButtonQuickReply || k == ButtonURL || k == ButtonPhoneNumber
}

type Button struct {
	Kind  ButtonKind `json:"kind"`
	Label string     `json:"label"`
	Value string     `json:"value"`
}

type Template struct {
	ID        string           `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string           `gorm:"type:varchar(255);not null" json:"name"`
	Category  TemplateCategory `gorm:"type:varchar(32);not null" json:"category"`
	Header    *TemplateHeader  `gorm:"serializer:json" json:"header,omitempty"`
	Body      string           `gorm:"type:text;not null" json:"body"`
	Footer    string           `gorm:"type:text" json:"footer,omitempty"`
	Buttons   []Button         `gorm:"serializer:json" json:"buttons"`
	Variables []string         `gorm:"serializer:json" json:"variables"`
	Position  int64            `gorm:"index" json:"-"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// HeaderText returns the header content when the header is text typed.
func (t *Template) HeaderText() string {
	if t.Header == nil || t.Header.Type != HeaderText {
		return ""
	}
	return t.Header.Content
}

// TemplateFields carries the editable parts of a template.
type TemplateFields struct {
	Name     string           `json:"name"`
	Category TemplateCategory `json:"category"`
	Header   *TemplateHeader  `json:"header,omitempty"`
	Body     string           `json:"body"`
	Footer   string           `json:"footer,omitempty"`
	Buttons  []Button         `json:"buttons,omitempty"`
}
