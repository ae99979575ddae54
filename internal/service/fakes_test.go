package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"mygames/internal/apperr"
	"mygames/internal/domain"
	"mygames/internal/repository"
)

// In-memory repository fakes. They mirror the error kinds the sqlite
// implementations raise so the services under test see the same taxonomy.

type fakeUserRepo struct {
	nextID int64
	users  map[int64]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]domain.User)}
}

func (r *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return 0, apperr.New(apperr.Conflict, "username already taken")
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "user not found")
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	copied := u
	return &copied, nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *fakeUserRepo) List(ctx context.Context, page repository.Page) ([]domain.User, int64, error) {
	all := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page), int64(len(all)), nil
}

func (r *fakeUserRepo) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	u, ok := r.users[id]
	if !ok {
		return apperr.New(apperr.NotFound, "user not found")
	}
	u.Enabled = enabled
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return apperr.New(apperr.NotFound, "user not found")
	}
	u.PasswordHash = passwordHash
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperr.New(apperr.NotFound, "user not found")
	}
	delete(r.users, id)
	return nil
}

type fakeResetTokenRepo struct {
	users  *fakeUserRepo
	nextID int64
	tokens map[int64]domain.PasswordResetToken
}

func newFakeResetTokenRepo(users *fakeUserRepo) *fakeResetTokenRepo {
	return &fakeResetTokenRepo{users: users, tokens: make(map[int64]domain.PasswordResetToken)}
}

func (r *fakeResetTokenRepo) Init(ctx context.Context) error { return nil }

func (r *fakeResetTokenRepo) Replace(ctx context.Context, token *domain.PasswordResetToken) error {
	for id, t := range r.tokens {
		if t.UserID == token.UserID {
			delete(r.tokens, id)
		}
	}
	r.nextID++
	token.ID = r.nextID
	r.tokens[token.ID] = *token
	return nil
}

func (r *fakeResetTokenRepo) GetByToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	for _, t := range r.tokens {
		if t.Token == token {
			copied := t
			return &copied, nil
		}
	}
	return nil, apperr.New(apperr.InvalidToken, "invalid reset token")
}

func (r *fakeResetTokenRepo) Consume(ctx context.Context, tokenID, userID int64, passwordHash string) error {
	if _, ok := r.tokens[tokenID]; !ok {
		return apperr.New(apperr.InvalidToken, "invalid reset token")
	}
	if err := r.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}
	delete(r.tokens, tokenID)
	return nil
}

func (r *fakeResetTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for id, t := range r.tokens {
		if !t.ExpiryDate.After(now) {
			delete(r.tokens, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeResetTokenRepo) tokenForUser(userID int64) *domain.PasswordResetToken {
	for _, t := range r.tokens {
		if t.UserID == userID {
			copied := t
			return &copied
		}
	}
	return nil
}

type fakeMyGameRepo struct {
	users   *fakeUserRepo
	nextID  int64
	entries map[int64]domain.MyGame
}

func newFakeMyGameRepo(users *fakeUserRepo) *fakeMyGameRepo {
	return &fakeMyGameRepo{users: users, entries: make(map[int64]domain.MyGame)}
}

func (r *fakeMyGameRepo) Init(ctx context.Context) error { return nil }

func (r *fakeMyGameRepo) Create(ctx context.Context, entry *domain.MyGame) (int64, error) {
	r.nextID++
	entry.ID = r.nextID
	r.entries[entry.ID] = *entry
	return entry.ID, nil
}

func (r *fakeMyGameRepo) Get(ctx context.Context, id int64) (*domain.MyGame, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "my game entry not found")
	}
	copied := e
	if owner, err := r.users.GetByID(ctx, e.UserID); err == nil {
		copied.OwnerUsername = owner.Username
	}
	return &copied, nil
}

func (r *fakeMyGameRepo) Update(ctx context.Context, entry *domain.MyGame) error {
	if _, ok := r.entries[entry.ID]; !ok {
		return apperr.New(apperr.NotFound, "my game entry not found")
	}
	r.entries[entry.ID] = *entry
	return nil
}

func (r *fakeMyGameRepo) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	e, ok := r.entries[id]
	if !ok {
		return apperr.New(apperr.NotFound, "my game entry not found")
	}
	e.Status = status
	r.entries[id] = e
	return nil
}

func (r *fakeMyGameRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.entries[id]; !ok {
		return apperr.New(apperr.NotFound, "my game entry not found")
	}
	delete(r.entries, id)
	return nil
}

func (r *fakeMyGameRepo) ListByUser(ctx context.Context, userID int64, filter domain.MyGameFilter, page repository.Page) ([]domain.MyGame, int64, error) {
	matched := make([]domain.MyGame, 0)
	for _, e := range r.entries {
		if e.UserID != userID {
			continue
		}
		if filter.Title != "" && !strings.Contains(strings.ToLower(e.GameTitle), strings.ToLower(filter.Title)) {
			continue
		}
		if filter.PlatformID != 0 && e.PlatformID != filter.PlatformID {
			continue
		}
		if filter.SourceID != 0 && e.SourceID != filter.SourceID {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, page), int64(len(matched)), nil
}

func (r *fakeMyGameRepo) List(ctx context.Context, page repository.Page) ([]domain.MyGame, int64, error) {
	all := make([]domain.MyGame, 0, len(r.entries))
	for _, e := range r.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page), int64(len(all)), nil
}

type fakeGameRepo struct {
	nextID int64
	games  map[int64]domain.Game
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: make(map[int64]domain.Game)}
}

func (r *fakeGameRepo) Init(ctx context.Context) error { return nil }

func (r *fakeGameRepo) Create(ctx context.Context, game *domain.Game) (int64, error) {
	r.nextID++
	game.ID = r.nextID
	r.games[game.ID] = *game
	return game.ID, nil
}

func (r *fakeGameRepo) Get(ctx context.Context, id int64) (*domain.Game, error) {
	g, ok := r.games[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "game not found")
	}
	copied := g
	return &copied, nil
}

func (r *fakeGameRepo) Update(ctx context.Context, game *domain.Game) error {
	if _, ok := r.games[game.ID]; !ok {
		return apperr.New(apperr.NotFound, "game not found")
	}
	r.games[game.ID] = *game
	return nil
}

func (r *fakeGameRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.games[id]; !ok {
		return apperr.New(apperr.NotFound, "game not found")
	}
	delete(r.games, id)
	return nil
}

func (r *fakeGameRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.games[id]
	return ok, nil
}

func (r *fakeGameRepo) List(ctx context.Context, titleFilter string, page repository.Page) ([]domain.Game, int64, error) {
	matched := make([]domain.Game, 0)
	for _, g := range r.games {
		if titleFilter != "" && !strings.Contains(strings.ToLower(g.Title), titleFilter) {
			continue
		}
		matched = append(matched, g)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, page), int64(len(matched)), nil
}

func (r *fakeGameRepo) AddGenre(ctx context.Context, gameID, genreID int64) error {
	return r.addSet(gameID, genreID, true)
}

func (r *fakeGameRepo) RemoveGenre(ctx context.Context, gameID, genreID int64) error {
	return r.removeSet(gameID, genreID, true)
}

func (r *fakeGameRepo) AddTheme(ctx context.Context, gameID, themeID int64) error {
	return r.addSet(gameID, themeID, false)
}

func (r *fakeGameRepo) RemoveTheme(ctx context.Context, gameID, themeID int64) error {
	return r.removeSet(gameID, themeID, false)
}

func (r *fakeGameRepo) addSet(gameID, refID int64, genre bool) error {
	g, ok := r.games[gameID]
	if !ok {
		return apperr.New(apperr.NotFound, "game not found")
	}
	set := g.Themes
	if genre {
		set = g.Genres
	}
	for _, e := range set {
		if e.ID == refID {
			return nil
		}
	}
	set = append(set, domain.LookupEntity{ID: refID})
	if genre {
		g.Genres = set
	} else {
		g.Themes = set
	}
	r.games[gameID] = g
	return nil
}

func (r *fakeGameRepo) removeSet(gameID, refID int64, genre bool) error {
	g, ok := r.games[gameID]
	if !ok {
		return apperr.New(apperr.NotFound, "game not found")
	}
	set := g.Themes
	if genre {
		set = g.Genres
	}
	kept := set[:0]
	for _, e := range set {
		if e.ID != refID {
			kept = append(kept, e)
		}
	}
	if genre {
		g.Genres = kept
	} else {
		g.Themes = kept
	}
	r.games[gameID] = g
	return nil
}

type fakeLookupRepo struct {
	nextID   int64
	entities map[domain.LookupKind]map[int64]string
}

func newFakeLookupRepo() *fakeLookupRepo {
	return &fakeLookupRepo{entities: make(map[domain.LookupKind]map[int64]string)}
}

func (r *fakeLookupRepo) Init(ctx context.Context) error { return nil }

func (r *fakeLookupRepo) Create(ctx context.Context, kind domain.LookupKind, name string) (*domain.LookupEntity, error) {
	byID := r.entities[kind]
	if byID == nil {
		byID = make(map[int64]string)
		r.entities[kind] = byID
	}
	for _, existing := range byID {
		if existing == name {
			return nil, apperr.Newf(apperr.Conflict, "%s name already exists", kind)
		}
	}
	r.nextID++
	byID[r.nextID] = name
	return &domain.LookupEntity{ID: r.nextID, Name: name}, nil
}

func (r *fakeLookupRepo) Get(ctx context.Context, kind domain.LookupKind, id int64) (*domain.LookupEntity, error) {
	name, ok := r.entities[kind][id]
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "%s not found", kind)
	}
	return &domain.LookupEntity{ID: id, Name: name}, nil
}

func (r *fakeLookupRepo) Update(ctx context.Context, kind domain.LookupKind, id int64, name string) error {
	if _, ok := r.entities[kind][id]; !ok {
		return apperr.Newf(apperr.NotFound, "%s not found", kind)
	}
	r.entities[kind][id] = name
	return nil
}

func (r *fakeLookupRepo) Delete(ctx context.Context, kind domain.LookupKind, id int64) error {
	if _, ok := r.entities[kind][id]; !ok {
		return apperr.Newf(apperr.NotFound, "%s not found", kind)
	}
	delete(r.entities[kind], id)
	return nil
}

func (r *fakeLookupRepo) List(ctx context.Context, kind domain.LookupKind, page repository.Page) ([]domain.LookupEntity, int64, error) {
	all := make([]domain.LookupEntity, 0, len(r.entities[kind]))
	for id, name := range r.entities[kind] {
		all = append(all, domain.LookupEntity{ID: id, Name: name})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, page), int64(len(all)), nil
}

func (r *fakeLookupRepo) Exists(ctx context.Context, kind domain.LookupKind, id int64) (bool, error) {
	_, ok := r.entities[kind][id]
	return ok, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (s *fakeSender) SendHTML(to, subject, htmlBody string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

func paginate[T any](items []T, page repository.Page) []T {
	if page.Offset >= len(items) {
		return []T{}
	}
	end := page.Offset + page.Limit
	if page.Limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[page.Offset:end]
}
