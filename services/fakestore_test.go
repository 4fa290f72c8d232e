package services

import (
	"sort"
	"sync"
	"time"

	"github.com/CHgh0sts/LotoSocket/game"
	"github.com/CHgh0sts/LotoSocket/models"
	"github.com/CHgh0sts/LotoSocket/store"

	"github.com/google/uuid"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	mu         sync.Mutex
	users      map[string]*models.User
	rooms      map[string]*models.Room // by room id
	roster     map[string]map[string]bool
	bans       map[string]map[string]bool // room id -> user id
	parties    map[string][]*models.Party // room id, oldest first
	cartons    map[string][]*models.Carton
	categories map[string][]*models.Category
	pubs       map[string][]*models.Pub
	failAll    error // when set, every call fails with it
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[string]*models.User),
		rooms:      make(map[string]*models.Room),
		roster:     make(map[string]map[string]bool),
		bans:       make(map[string]map[string]bool),
		parties:    make(map[string][]*models.Party),
		cartons:    make(map[string][]*models.Carton),
		categories: make(map[string][]*models.Category),
		pubs:       make(map[string][]*models.Pub),
	}
}

var _ store.Store = (*fakeStore)(nil)

// addRoom seeds a room with its creator and optional extra roster members.
func (f *fakeStore) addRoom(code, creatorID string, memberIDs ...string) *models.Room {
	f.mu.Lock()
	defer f.mu.Unlock()

	room := &models.Room{
		ID: uuid.NewString(), Code: code, Name: "Room " + code,
		IsPublic: true, IsActive: true, MaxPlayers: 10, CreatorID: creatorID,
	}
	f.rooms[room.ID] = room
	f.roster[room.ID] = map[string]bool{creatorID: true}
	for _, id := range memberIDs {
		f.roster[room.ID][id] = true
	}
	return room
}

func (f *fakeStore) addUser(name string) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &models.User{ID: uuid.NewString(), Name: name, Email: name + "@test.local"}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) addParty(roomID string, variant game.Variant, numbers []int) *models.Party {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &models.Party{ID: uuid.NewString(), RoomID: roomID, GameType: string(variant), CreatedAt: time.Now()}
	p.SetNumbers(numbers)
	f.parties[roomID] = append(f.parties[roomID], p)
	return p
}

func (f *fakeStore) addCarton(roomCode, userID string, cells []int) *models.Carton {
	f.mu.Lock()
	defer f.mu.Unlock()
	ct := &models.Carton{ID: uuid.NewString(), RoomCode: roomCode, UserID: userID}
	ct.SetCells(cells)
	f.cartons[roomCode] = append(f.cartons[roomCode], ct)
	return ct
}

// roomView returns a copy with the roster materialized, like the gorm
// store's Preload does.
func (f *fakeStore) roomView(room *models.Room) *models.Room {
	cp := *room
	cp.Players = nil
	ids := make([]string, 0, len(f.roster[room.ID]))
	for id := range f.roster[room.ID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			cp.Players = append(cp.Players, *u)
		} else {
			cp.Players = append(cp.Players, models.User{ID: id, Name: "user-" + id[:4]})
		}
	}
	return &cp
}

func (f *fakeStore) CreateUser(u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeStore) GetUserByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetUserByID(id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	return f.users[id], nil
}

func (f *fakeStore) CreateRoom(r *models.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	f.rooms[r.ID] = r
	f.roster[r.ID] = make(map[string]bool)
	return nil
}

func (f *fakeStore) GetRoomByCode(code string) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, r := range f.rooms {
		if r.Code == code {
			return f.roomView(r), nil
		}
	}
	return nil, game.ErrRoomNotFound
}

func (f *fakeStore) ListPublicRooms() ([]models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Room
	for _, r := range f.rooms {
		if r.IsPublic && r.IsActive {
			out = append(out, *f.roomView(r))
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateRoomSettings(roomID string, settings store.RoomSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[roomID]
	if !ok {
		return game.ErrRoomNotFound
	}
	if settings.Name != nil {
		r.Name = *settings.Name
	}
	if settings.IsPublic != nil {
		r.IsPublic = *settings.IsPublic
	}
	if settings.MaxPlayers != nil {
		r.MaxPlayers = *settings.MaxPlayers
	}
	if settings.IsActive != nil {
		r.IsActive = *settings.IsActive
	}
	return nil
}

func (f *fakeStore) SetRoomCreator(roomID, newCreatorID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	r, ok := f.rooms[roomID]
	if !ok {
		return game.ErrRoomNotFound
	}
	r.CreatorID = newCreatorID
	return nil
}

func (f *fakeStore) AddPlayerToRoom(roomID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	if f.roster[roomID] == nil {
		f.roster[roomID] = make(map[string]bool)
	}
	f.roster[roomID][userID] = true
	return nil
}

func (f *fakeStore) RemovePlayerFromRoom(roomID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	delete(f.roster[roomID], userID)
	return nil
}

func (f *fakeStore) CreateBan(userID, roomID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	if f.bans[roomID] == nil {
		f.bans[roomID] = make(map[string]bool)
	}
	f.bans[roomID][userID] = true
	return nil
}

func (f *fakeStore) FindBan(userID, roomID string) (*models.Ban, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	if f.bans[roomID][userID] {
		return &models.Ban{UserID: userID, RoomID: roomID}, nil
	}
	return nil, nil
}

func (f *fakeStore) DeleteBan(userID, roomID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bans[roomID], userID)
	return nil
}

func (f *fakeStore) ListBans(roomID string) ([]models.Ban, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Ban
	for userID := range f.bans[roomID] {
		out = append(out, models.Ban{UserID: userID, RoomID: roomID})
	}
	return out, nil
}

func (f *fakeStore) GetLatestParty(roomID string) (*models.Party, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	list := f.parties[roomID]
	if len(list) == 0 {
		return nil, nil
	}
	return list[len(list)-1], nil
}

func (f *fakeStore) CreateParty(roomID string, variant game.Variant, initialNumbers []int) (*models.Party, error) {
	if initialNumbers == nil {
		initialNumbers = []int{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	p := &models.Party{ID: uuid.NewString(), RoomID: roomID, GameType: string(variant), CreatedAt: time.Now()}
	p.SetNumbers(initialNumbers)
	f.parties[roomID] = append(f.parties[roomID], p)
	return p, nil
}

func (f *fakeStore) ToggleNumberInParty(partyID string, number int) ([]int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, false, f.failAll
	}
	for _, list := range f.parties {
		for _, p := range list {
			if p.ID == partyID {
				newList, added := game.ToggleNumber(p.Numbers(), number)
				p.SetNumbers(newList)
				return newList, added, nil
			}
		}
	}
	return nil, false, game.ErrInvalidState
}

func (f *fakeStore) SetPartyVariant(partyID string, variant game.Variant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, list := range f.parties {
		for _, p := range list {
			if p.ID == partyID {
				p.GameType = string(variant)
				return nil
			}
		}
	}
	return game.ErrInvalidState
}

func (f *fakeStore) CreateCarton(c *models.Carton) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	f.cartons[c.RoomCode] = append(f.cartons[c.RoomCode], c)
	return nil
}

func (f *fakeStore) GetCarton(id string) (*models.Carton, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, list := range f.cartons {
		for _, ct := range list {
			if ct.ID == id {
				return ct, nil
			}
		}
	}
	return nil, game.ErrCardNotFound
}

func (f *fakeStore) ListCartonsForRoom(roomCode string, onlyActiveCategories bool) ([]models.Carton, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []models.Carton
	for _, ct := range f.cartons[roomCode] {
		out = append(out, *ct)
	}
	return out, nil
}

func (f *fakeStore) SetCartonCategory(cartonID string, categoryID *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, list := range f.cartons {
		for _, ct := range list {
			if ct.ID == cartonID {
				ct.CategoryID = categoryID
				return nil
			}
		}
	}
	return game.ErrCardNotFound
}

func (f *fakeStore) CreateCategory(c *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	f.categories[c.RoomCode] = append(f.categories[c.RoomCode], c)
	return nil
}

func (f *fakeStore) ListCategories(roomCode string) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Category
	for _, cat := range f.categories[roomCode] {
		out = append(out, *cat)
	}
	return out, nil
}

func (f *fakeStore) UpdateCategory(c *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, list := range f.categories {
		for i, cat := range list {
			if cat.ID == c.ID {
				list[i] = c
				return nil
			}
		}
	}
	return game.ErrRoomNotFound
}

func (f *fakeStore) DeleteCategory(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for code, list := range f.categories {
		for i, cat := range list {
			if cat.ID == id {
				f.categories[code] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (f *fakeStore) CreatePub(p *models.Pub) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	f.pubs[p.RoomCode] = append(f.pubs[p.RoomCode], p)
	return nil
}

func (f *fakeStore) ListPubs(roomCode string) ([]models.Pub, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Pub
	for _, p := range f.pubs[roomCode] {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStore) DeletePub(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for code, list := range f.pubs {
		for i, p := range list {
			if p.ID == id {
				f.pubs[code] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return nil
}
