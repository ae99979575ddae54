package domain

import "time"

// LookupKind names one of the name-only catalog entities. The six kinds share
// identical persistence and CRUD behavior.
type LookupKind string

const (
	KindCompany  LookupKind = "companies"
	KindGenre    LookupKind = "genres"
	KindTheme    LookupKind = "themes"
	KindPlatform LookupKind = "platforms"
	KindSource   LookupKind = "sources"
	KindStore    LookupKind = "stores"
)

// LookupKinds lists every lookup entity kind, in route order.
var LookupKinds = []LookupKind{KindCompany, KindGenre, KindTheme, KindPlatform, KindSource, KindStore}

// LookupEntity is a catalog row with a unique, normalized name.
type LookupEntity struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Game is the central catalog entity. Genres and Themes are loaded separately
// from join tables.
type Game struct {
	ID          int64      `db:"id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	ReleasedAt  *time.Time `db:"released_at"`
	CompanyID   int64      `db:"company_id"`
	CompanyName string     `db:"company_name"`
	Genres      []LookupEntity
	Themes      []LookupEntity
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
