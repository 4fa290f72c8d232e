package store

import (
	"github.com/CHgh0sts/LotoSocket/game"
	"github.com/CHgh0sts/LotoSocket/models"
)

// Store is the persistent-store collaborator. Implementations map their own
// failures onto the game error taxonomy: missing records become the
// NotFound sentinels and I/O failures wrap game.ErrStoreUnavailable.
type Store interface {
	// Users
	CreateUser(u *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)

	// Rooms
	CreateRoom(r *models.Room) error
	GetRoomByCode(code string) (*models.Room, error)
	ListPublicRooms() ([]models.Room, error)
	UpdateRoomSettings(roomID string, settings RoomSettings) error
	SetRoomCreator(roomID, newCreatorID string) error
	AddPlayerToRoom(roomID, userID string) error // idempotent
	RemovePlayerFromRoom(roomID, userID string) error

	// Bans
	CreateBan(userID, roomID string) error
	FindBan(userID, roomID string) (*models.Ban, error) // nil, nil when absent
	DeleteBan(userID, roomID string) error
	ListBans(roomID string) ([]models.Ban, error)

	// Parties
	GetLatestParty(roomID string) (*models.Party, error)
	CreateParty(roomID string, variant game.Variant, initialNumbers []int) (*models.Party, error)
	ToggleNumberInParty(partyID string, number int) (newList []int, added bool, err error)
	SetPartyVariant(partyID string, variant game.Variant) error

	// Cartons
	CreateCarton(c *models.Carton) error
	GetCarton(id string) (*models.Carton, error)
	ListCartonsForRoom(roomCode string, onlyActiveCategories bool) ([]models.Carton, error)
	SetCartonCategory(cartonID string, categoryID *string) error

	// Categories
	CreateCategory(c *models.Category) error
	ListCategories(roomCode string) ([]models.Category, error)
	UpdateCategory(c *models.Category) error
	DeleteCategory(id string) error

	// Pubs
	CreatePub(p *models.Pub) error
	ListPubs(roomCode string) ([]models.Pub, error)
	DeletePub(id string) error
}

// RoomSettings carries the mutable room fields a creator may change.
type RoomSettings struct {
	Name       *string
	IsPublic   *bool
	Password   *string
	MaxPlayers *int
	IsActive   *bool
}
