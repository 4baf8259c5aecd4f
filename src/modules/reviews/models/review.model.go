package reviews

import (
	movies "cinelog/src/modules/movies/models"
	users "cinelog/src/modules/users/models"
	"time"

	"gorm.io/gorm"
)

// Review holds one user's rating of one movie. The composite unique index
// enforces at most one review per (movie, user) pair at the storage layer, so
// concurrent creates cannot slip past an application-level check.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MovieID   uint      `json:"movie" gorm:"not null;uniqueIndex:idx_reviews_movie_user"`
	UserID    uint      `json:"-" gorm:"not null;uniqueIndex:idx_reviews_movie_user"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Title     string    `json:"title"`
	Body      string    `json:"body" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Movie   movies.Movie `json:"-" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
	User    users.User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	LikedBy []users.User `json:"-" gorm:"many2many:review_likes;constraint:OnDelete:CASCADE"`
}

// ReviewResponse is the wire shape of a review. The author renders as a
// display name and likes_count is computed from the liked_by set on read.
type ReviewResponse struct {
	ID         uint      `json:"id"`
	Movie      uint      `json:"movie"`
	User       string    `json:"user"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewReviewResponse builds the wire shape from a review loaded with its User
// and LikedBy associations.
func NewReviewResponse(r Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		Movie:      r.MovieID,
		User:       r.User.Username,
		Rating:     r.Rating,
		Title:      r.Title,
		Body:       r.Body,
		LikesCount: len(r.LikedBy),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func MigrateReviews(db *gorm.DB) error {
	return db.AutoMigrate(&Review{})
}
