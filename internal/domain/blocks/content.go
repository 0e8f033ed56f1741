package blocks

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"linkbio/internal/domain/errs"
	"linkbio/internal/domain/validation"
)

type Type string

const (
	TypeText        Type = "text"
	TypeImage       Type = "image"
	TypeButton      Type = "button"
	TypeSocialLinks Type = "social_links"
	TypeEmbed       Type = "embed"
	TypeAIChat      Type = "ai_chat"
)

var allTypes = []Type{TypeText, TypeImage, TypeButton, TypeSocialLinks, TypeEmbed, TypeAIChat}

func ParseType(s string) (Type, error) {
	t := Type(strings.TrimSpace(s))
	for _, known := range allTypes {
		if t == known {
			return t, nil
		}
	}
	return "", errs.Validation("type", "unknown block type "+strconv.Quote(s))
}

// Content is the type-specific payload of a block.
type Content interface {
	BlockType() Type
}

type TextContent struct {
	Title string `json:"title" validate:"required,max=100"`
	Body  string `json:"body,omitempty" validate:"max=500"`
}

type ImageContent struct {
	URL  string `json:"url" validate:"required,url"`
	Alt  string `json:"alt,omitempty"`
	Link string `json:"link,omitempty" validate:"omitempty,url"`
}

type ButtonContent struct {
	Label string `json:"label" validate:"required,min=1,max=50"`
	URL   string `json:"url" validate:"required,url"`
	Style string `json:"style,omitempty" validate:"omitempty,oneof=primary secondary outline"`
}

type SocialLink struct {
	Platform string `json:"platform" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
	Handle   string `json:"handle,omitempty"`
}

type SocialLinksContent struct {
	Links []SocialLink `json:"links" validate:"required,dive"`
}

type EmbedContent struct {
	URL  string `json:"url" validate:"required,url"`
	Kind string `json:"type,omitempty" validate:"omitempty,oneof=youtube spotify iframe"`
}

type AIChatContent struct {
	Greeting     string `json:"greeting,omitempty"`
	SystemPrompt string `json:"systemPrompt,omitempty"`
	AvatarURL    string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
}

func (TextContent) BlockType() Type        { return TypeText }
func (ImageContent) BlockType() Type       { return TypeImage }
func (ButtonContent) BlockType() Type      { return TypeButton }
func (SocialLinksContent) BlockType() Type { return TypeSocialLinks }
func (EmbedContent) BlockType() Type       { return TypeEmbed }
func (AIChatContent) BlockType() Type      { return TypeAIChat }

func newContent(t Type) (Content, error) {
	switch t {
	case TypeText:
		return &TextContent{}, nil
	case TypeImage:
		return &ImageContent{}, nil
	case TypeButton:
		return &ButtonContent{}, nil
	case TypeSocialLinks:
		return &SocialLinksContent{}, nil
	case TypeEmbed:
		return &EmbedContent{}, nil
	case TypeAIChat:
		return &AIChatContent{}, nil
	}
	return nil, errs.Validation("type", "unknown block type "+strconv.Quote(string(t)))
}

// DecodeContent parses raw JSON into the payload struct selected by t and
// validates it. Unknown keys are dropped.
func DecodeContent(t Type, raw []byte) (Content, error) {
	c, err := newContent(t)
	if err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, c); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, errs.Validation(typeErr.Field, "must be a "+typeErr.Type.String())
		}
		return nil, errs.Validation("content", "malformed JSON")
	}

	if err := validation.Struct(c); err != nil {
		return nil, err
	}
	return c, nil
}

// EncodeContent validates c and returns its canonical JSON form.
func EncodeContent(c Content) ([]byte, error) {
	if c == nil {
		return nil, errs.Validation("content", "is required")
	}
	if err := validation.Struct(c); err != nil {
		return nil, err
	}
	return json.Marshal(c)
}
