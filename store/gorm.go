package store

import (
	"errors"
	"fmt"

	"github.com/CHgh0sts/LotoSocket/game"
	"github.com/CHgh0sts/LotoSocket/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on postgres through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", game.ErrStoreUnavailable, err)
}

// -------------------- Users --------------------

func (s *GormStore) CreateUser(u *models.User) error {
	if err := s.db.Create(u).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return &user, nil
}

// -------------------- Rooms --------------------

func (s *GormStore) CreateRoom(r *models.Room) error {
	if err := s.db.Create(r).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) GetRoomByCode(code string) (*models.Room, error) {
	var room models.Room
	err := s.db.Preload("Players").Preload("Creator").
		Where("code = ?", code).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrRoomNotFound
		}
		return nil, storeErr(err)
	}
	return &room, nil
}

func (s *GormStore) ListPublicRooms() ([]models.Room, error) {
	var rooms []models.Room
	err := s.db.Preload("Players").
		Where("is_public = ? AND is_active = ?", true, true).
		Order("created_at DESC").Find(&rooms).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return rooms, nil
}

func (s *GormStore) UpdateRoomSettings(roomID string, settings RoomSettings) error {
	updates := map[string]any{}
	if settings.Name != nil {
		updates["name"] = *settings.Name
	}
	if settings.IsPublic != nil {
		updates["is_public"] = *settings.IsPublic
	}
	if settings.Password != nil {
		updates["password"] = *settings.Password
	}
	if settings.MaxPlayers != nil {
		updates["max_players"] = *settings.MaxPlayers
	}
	if settings.IsActive != nil {
		updates["is_active"] = *settings.IsActive
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.db.Model(&models.Room{}).Where("id = ?", roomID).Updates(updates).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) SetRoomCreator(roomID, newCreatorID string) error {
	if err := s.db.Model(&models.Room{}).Where("id = ?", roomID).
		Update("creator_id", newCreatorID).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) AddPlayerToRoom(roomID, userID string) error {
	// Upsert on the join table keeps this idempotent.
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
		Table("room_players").
		Create(map[string]any{"room_id": roomID, "user_id": userID}).Error
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) RemovePlayerFromRoom(roomID, userID string) error {
	err := s.db.Exec("DELETE FROM room_players WHERE room_id = ? AND user_id = ?",
		roomID, userID).Error
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// -------------------- Bans --------------------

func (s *GormStore) CreateBan(userID, roomID string) error {
	ban := models.Ban{UserID: userID, RoomID: roomID}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ban).Error
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) FindBan(userID, roomID string) (*models.Ban, error) {
	var ban models.Ban
	err := s.db.Where("user_id = ? AND room_id = ?", userID, roomID).First(&ban).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return &ban, nil
}

func (s *GormStore) DeleteBan(userID, roomID string) error {
	err := s.db.Where("user_id = ? AND room_id = ?", userID, roomID).
		Delete(&models.Ban{}).Error
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) ListBans(roomID string) ([]models.Ban, error) {
	var bans []models.Ban
	err := s.db.Preload("User").Where("room_id = ?", roomID).
		Order("created_at ASC").Find(&bans).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return bans, nil
}

// -------------------- Parties --------------------

func (s *GormStore) GetLatestParty(roomID string) (*models.Party, error) {
	var party models.Party
	err := s.db.Where("room_id = ?", roomID).
		Order("created_at DESC").First(&party).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return &party, nil
}

func (s *GormStore) CreateParty(roomID string, variant game.Variant, initialNumbers []int) (*models.Party, error) {
	if initialNumbers == nil {
		initialNumbers = []int{}
	}
	party := models.Party{RoomID: roomID, GameType: string(variant)}
	party.SetNumbers(initialNumbers)
	if err := s.db.Create(&party).Error; err != nil {
		return nil, storeErr(err)
	}
	return &party, nil
}

func (s *GormStore) ToggleNumberInParty(partyID string, number int) ([]int, bool, error) {
	var party models.Party
	if err := s.db.First(&party, "id = ?", partyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, game.ErrInvalidState
		}
		return nil, false, storeErr(err)
	}

	newList, added := game.ToggleNumber(party.Numbers(), number)
	party.SetNumbers(newList)
	if err := s.db.Model(&party).Update("list_numbers", party.ListNumbers).Error; err != nil {
		return nil, false, storeErr(err)
	}
	return newList, added, nil
}

func (s *GormStore) SetPartyVariant(partyID string, variant game.Variant) error {
	err := s.db.Model(&models.Party{}).Where("id = ?", partyID).
		Update("game_type", string(variant)).Error
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// -------------------- Cartons --------------------

func (s *GormStore) CreateCarton(c *models.Carton) error {
	if err := s.db.Create(c).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) GetCarton(id string) (*models.Carton, error) {
	var carton models.Carton
	err := s.db.Preload("User").Preload("Category").First(&carton, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, game.ErrCardNotFound
		}
		return nil, storeErr(err)
	}
	return &carton, nil
}

func (s *GormStore) ListCartonsForRoom(roomCode string, onlyActiveCategories bool) ([]models.Carton, error) {
	var cartons []models.Carton
	err := s.db.Preload("User").Preload("Category").
		Where("room_code = ?", roomCode).
		Order("created_at ASC").Find(&cartons).Error
	if err != nil {
		return nil, storeErr(err)
	}
	if !onlyActiveCategories {
		return cartons, nil
	}

	// Keep uncategorized cartons and those whose category is activated.
	out := cartons[:0]
	for _, c := range cartons {
		if c.CategoryID == nil || c.Category == nil || c.Category.Activated {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *GormStore) SetCartonCategory(cartonID string, categoryID *string) error {
	err := s.db.Model(&models.Carton{}).Where("id = ?", cartonID).
		Update("category_id", categoryID).Error
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// -------------------- Categories --------------------

func (s *GormStore) CreateCategory(c *models.Category) error {
	if err := s.db.Create(c).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) ListCategories(roomCode string) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Where("room_code = ?", roomCode).
		Order("created_at ASC").Find(&categories).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return categories, nil
}

func (s *GormStore) UpdateCategory(c *models.Category) error {
	if err := s.db.Save(c).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) DeleteCategory(id string) error {
	if err := s.db.Delete(&models.Category{}, "id = ?", id).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

// -------------------- Pubs --------------------

func (s *GormStore) CreatePub(p *models.Pub) error {
	if err := s.db.Create(p).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) ListPubs(roomCode string) ([]models.Pub, error) {
	var pubs []models.Pub
	err := s.db.Where("room_code = ?", roomCode).
		Order("created_at ASC").Find(&pubs).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return pubs, nil
}

func (s *GormStore) DeletePub(id string) error {
	if err := s.db.Delete(&models.Pub{}, "id = ?", id).Error; err != nil {
		return storeErr(err)
	}
	return nil
}
