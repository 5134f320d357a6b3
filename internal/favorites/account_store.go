package favorites

import (
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"imovia_backend/internal/model"
)

// AccountStore persists favorites for authenticated users. The owner key
// is the user ID in decimal form.
type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) userID(owner string) (uint, error) {
	id, err := strconv.ParseUint(owner, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid owner key %q: %v", owner, err)
	}
	return uint(id), nil
}

func (s *AccountStore) Toggle(owner string, listingID uint) (bool, error) {
	userID, err := s.userID(owner)
	if err != nil {
		return false, err
	}

	var existing model.Favorite
	err = s.db.Where("user_id = ? AND listing_id = ?", userID, listingID).
		First(&existing).Error

	if err == nil {
		if err := s.db.Unscoped().Delete(&existing).Error; err != nil {
			return true, fmt.Errorf("could not remove favorite: %v", err)
		}
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, fmt.Errorf("could not check favorite: %v", err)
	}

	fav := model.Favorite{UserID: userID, ListingID: listingID}
	if err := s.db.Create(&fav).Error; err != nil {
		return false, fmt.Errorf("could not add favorite: %v", err)
	}
	return true, nil
}

func (s *AccountStore) Has(owner string, listingID uint) (bool, error) {
	userID, err := s.userID(owner)
	if err != nil {
		return false, err
	}

	var count int64
	if err := s.db.Model(&model.Favorite{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *AccountStore) List(owner string) ([]uint, error) {
	userID, err := s.userID(owner)
	if err != nil {
		return nil, err
	}

	var favs []model.Favorite
	if err := s.db.Where("user_id = ?", userID).
		Order("id asc").
		Find(&favs).Error; err != nil {
		return nil, err
	}

	out := make([]uint, 0, len(favs))
	for _, f := range favs {
		out = append(out, f.ListingID)
	}
	return out, nil
}

func (s *AccountStore) Count(owner string) (int, error) {
	userID, err := s.userID(owner)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := s.db.Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}
