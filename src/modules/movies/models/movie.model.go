package movies

import (
	"time"

	"gorm.io/gorm"
)

type Movie struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null;index"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;not null;type:varchar(255)"`
	Description string     `json:"description" gorm:"type:text"`
	ReleaseDate *time.Time `json:"release_date"`
	Duration    *int       `json:"duration" gorm:"check:duration >= 0"`
	Director    string     `json:"director"`
	Language    string     `json:"language"`
	Country     string     `json:"country"`
	PosterURL   string     `json:"poster_url"`
	CreatedAt   time.Time  `json:"created_at"`

	Genres []Genre `json:"genres" gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE"`
}

type Genre struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func MigrateMovies(db *gorm.DB) error {
	return db.AutoMigrate(&Genre{}, &Movie{})
}
