package users

type MeResponse struct {
	User    UserDTO       `json:"user"`
	Profile *ProfileLite  `json:"profile"` // nil until onboarding creates one
	Stats   BlockStatsDTO `json:"stats"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	AuthProvider string `json:"auth_provider"`
	HasPassword  bool   `json:"has_password"`
}

/* ---------- PROFILE ---------- */

type ProfileLite struct {
	Username  string `json:"username"`
	PublicURL string `json:"public_url"`
}

type BlockStatsDTO struct {
	Total   int64 `json:"total"`
	Visible int64 `json:"visible"`
}
