package http

import (
	"time"

	"mygames/internal/domain"
)

type UserResponse struct {
	ID                    int64       `json:"id"`
	Username              string      `json:"username"`
	Role                  domain.Role `json:"role"`
	Enabled               bool        `json:"enabled"`
	AccountNonExpired     bool        `json:"account_non_expired"`
	AccountNonLocked      bool        `json:"account_non_locked"`
	CredentialsNonExpired bool        `json:"credentials_non_expired"`
	CreatedAt             string      `json:"created_at"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:                    user.ID,
		Username:              user.Username,
		Role:                  user.Role,
		Enabled:               user.Enabled,
		AccountNonExpired:     user.AccountNonExpired,
		AccountNonLocked:      user.AccountNonLocked,
		CredentialsNonExpired: user.CredentialsNonExpired,
		CreatedAt:             user.CreatedAt.Format(time.RFC3339),
	}
}

type MyGameResponse struct {
	ID       int64         `json:"id"`
	Username string        `json:"username"`
	Game     RefResponse   `json:"game"`
	Platform RefResponse   `json:"platform"`
	Source   RefResponse   `json:"source"`
	Status   domain.Status `json:"status"`
}

type RefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func myGameToResponse(entry domain.MyGame) MyGameResponse {
	return MyGameResponse{
		ID:       entry.ID,
		Username: entry.OwnerUsername,
		Game:     RefResponse{ID: entry.GameID, Name: entry.GameTitle},
		Platform: RefResponse{ID: entry.PlatformID, Name: entry.PlatformName},
		Source:   RefResponse{ID: entry.SourceID, Name: entry.SourceName},
		Status:   entry.Status,
	}
}

type GameResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ReleasedAt  *string       `json:"released_at,omitempty"`
	Company     RefResponse   `json:"company"`
	Genres      []RefResponse `json:"genres"`
	Themes      []RefResponse `json:"themes"`
}

func gameToResponse(game domain.Game) GameResponse {
	resp := GameResponse{
		ID:          game.ID,
		Title:       game.Title,
		Description: game.Description,
		Company:     RefResponse{ID: game.CompanyID, Name: game.CompanyName},
		Genres:      lookupsToRefs(game.Genres),
		Themes:      lookupsToRefs(game.Themes),
	}
	if game.ReleasedAt != nil {
		v := game.ReleasedAt.Format("2006-01-02")
		resp.ReleasedAt = &v
	}
	return resp
}

func lookupsToRefs(entities []domain.LookupEntity) []RefResponse {
	refs := make([]RefResponse, len(entities))
	for i, e := range entities {
		refs[i] = RefResponse{ID: e.ID, Name: e.Name}
	}
	return refs
}

type LookupResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func lookupToResponse(e domain.LookupEntity) LookupResponse {
	return LookupResponse{ID: e.ID, Name: e.Name}
}
