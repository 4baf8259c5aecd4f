package users

import "gorm.io/gorm"

// User mirrors the identity resolved by the auth middleware. Account
// management itself lives outside this service; only the fields needed to
// reference and display review authors are kept here.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
}

func MigrateUsers(db *gorm.DB) error {
	return db.AutoMigrate(&User{})
}
