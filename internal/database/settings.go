package database

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// GetSetting returns the stored value for key.
// A missing key returns "" and no error.
func GetSetting(db *gorm.DB, key string) (string, error) {
	var s Setting
	err := db.Where("key = ?", key).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return s.Value, nil
}

// SaveSetting stores or replaces the value for key
func SaveSetting(db *gorm.DB, key, value string) error {
	if key == "" {
		return errors.New("setting key must not be empty")
	}

	// Save upserts on the primary key
	return db.Save(&Setting{Key: key, Value: value, UpdatedAt: time.Now()}).Error
}

// DeleteSetting removes key. Deleting a missing key is not an error.
func DeleteSetting(db *gorm.DB, key string) error {
	return db.Where("key = ?", key).Delete(&Setting{}).Error
}
