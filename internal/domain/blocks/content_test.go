package blocks

import (
	"strings"
	"testing"

	"linkbio/internal/domain/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeContent(t *testing.T) {
	tests := []struct {
		name      string
		typ       Type
		raw       string
		wantField string
	}{
		{"text ok", TypeText, `{"title":"Hello","body":"World"}`, ""},
		{"text missing title", TypeText, `{"body":"x"}`, "title"},
		{"text title too long", TypeText, `{"title":"` + strings.Repeat("a", 101) + `"}`, "title"},
		{"text title at limit", TypeText, `{"title":"` + strings.Repeat("é", 100) + `"}`, ""},
		{"text body too long", TypeText, `{"title":"t","body":"` + strings.Repeat("b", 501) + `"}`, "body"},
		{"text title wrong type", TypeText, `{"title":5}`, "title"},

		{"image ok", TypeImage, `{"url":"https://cdn.example.com/a.png","alt":"a","link":"https://example.com"}`, ""},
		{"image bad url", TypeImage, `{"url":"not a url"}`, "url"},
		{"image bad link", TypeImage, `{"url":"https://x.io/a.png","link":"nope"}`, "link"},

		{"button ok", TypeButton, `{"label":"Shop","url":"https://shop.example.com","style":"outline"}`, ""},
		{"button empty label", TypeButton, `{"label":"","url":"https://x.io"}`, "label"},
		{"button label too long", TypeButton, `{"label":"` + strings.Repeat("l", 51) + `","url":"https://x.io"}`, "label"},
		{"button bad style", TypeButton, `{"label":"a","url":"https://x.io","style":"neon"}`, "style"},

		{"social empty list", TypeSocialLinks, `{"links":[]}`, ""},
		{"social missing list", TypeSocialLinks, `{}`, "links"},
		{"social bad nested url", TypeSocialLinks, `{"links":[{"platform":"x","url":"https://x.com/a"},{"platform":"ig","url":"bad"}]}`, "links[1].url"},

		{"embed ok", TypeEmbed, `{"url":"https://youtube.com/watch?v=1","type":"youtube"}`, ""},
		{"embed bad kind", TypeEmbed, `{"url":"https://youtube.com/watch?v=1","type":"vimeo"}`, "type"},

		{"ai chat empty", TypeAIChat, `{}`, ""},
		{"ai chat null", TypeAIChat, `null`, ""},
		{"ai chat bad avatar", TypeAIChat, `{"avatarUrl":"x"}`, "avatarUrl"},

		{"malformed", TypeText, `{"title":`, "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := DecodeContent(tt.typ, []byte(tt.raw))
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.typ, c.BlockType())
				return
			}

			var verr *errs.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestDecodeContentUnknownType(t *testing.T) {
	_, err := DecodeContent(Type("carousel"), []byte(`{}`))
	assert.True(t, errs.IsValidation(err))
}

func TestParseType(t *testing.T) {
	typ, err := ParseType(" social_links ")
	require.NoError(t, err)
	assert.Equal(t, TypeSocialLinks, typ)

	_, err = ParseType("video")
	assert.True(t, errs.IsValidation(err))
}

func TestEncodeContentDropsUnknownKeys(t *testing.T) {
	c, err := DecodeContent(TypeButton, []byte(`{"label":"Go","url":"https://go.dev","extra":true}`))
	require.NoError(t, err)

	out, err := EncodeContent(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"Go","url":"https://go.dev"}`, string(out))
}
