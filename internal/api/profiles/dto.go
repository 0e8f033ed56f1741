package profilesapi

import (
	"linkbio/config"
	"linkbio/internal/domain/profiles"
)

type ThemeInput struct {
	Background  string `json:"background"`
	TextColor   string `json:"text_color"`
	ButtonStyle string `json:"button_style"`
	Font        string `json:"font"`
}

// nil fields are left unchanged
type ProfileRequest struct {
	Username    *string     `json:"username"`
	DisplayName *string     `json:"display_name"`
	Bio         *string     `json:"bio"`
	AvatarURL   *string     `json:"avatar_url"`
	Theme       *ThemeInput `json:"theme"`
}

func (r ProfileRequest) toInput() profiles.Input {
	in := profiles.Input{
		Username:    r.Username,
		DisplayName: r.DisplayName,
		Bio:         r.Bio,
		AvatarURL:   r.AvatarURL,
	}
	if r.Theme != nil {
		in.Theme = &profiles.Theme{
			Background:  r.Theme.Background,
			TextColor:   r.Theme.TextColor,
			ButtonStyle: r.Theme.ButtonStyle,
			Font:        r.Theme.Font,
		}
	}
	return in
}

type ProfileDTO struct {
	ID          string         `json:"id"`
	Username    string         `json:"username"`
	DisplayName string         `json:"display_name"`
	Bio         string         `json:"bio"`
	AvatarURL   string         `json:"avatar_url,omitempty"`
	Theme       profiles.Theme `json:"theme"`
	PublicURL   string         `json:"public_url"`
}

func ToProfileDTO(p profiles.Profile) ProfileDTO {
	return ProfileDTO{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		AvatarURL:   p.AvatarURL,
		Theme:       p.Theme,
		PublicURL:   profiles.BuildPublicURL(config.PUBLIC_BASE_URL, p.Username),
	}
}
