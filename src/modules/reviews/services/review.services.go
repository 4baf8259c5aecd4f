package reviews

import (
	"cinelog/src/config"
	movies "cinelog/src/modules/movies/models"
	lib "cinelog/src/modules/reviews/lib"
	models "cinelog/src/modules/reviews/models"
	users "cinelog/src/modules/users/models"
	"cinelog/src/utils"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// ListReviews returns every review, newest first.
func ListReviews() ([]models.ReviewResponse, *utils.ServiceError) {
	var list []models.Review
	if err := config.DB.Preload("User").Preload("LikedBy").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, utils.NewServiceError(http.StatusInternalServerError, "failed to list reviews")
	}

	responses := make([]models.ReviewResponse, 0, len(list))
	for _, r := range list {
		responses = append(responses, models.NewReviewResponse(r))
	}
	return responses, nil
}

func GetReview(id uint) (*models.ReviewResponse, *utils.ServiceError) {
	review, serviceErr := loadReview(id)
	if serviceErr != nil {
		return nil, serviceErr
	}
	res := models.NewReviewResponse(*review)
	return &res, nil
}

// CreateReview stores a review authored by the given caller. The author is
// always the authenticated caller, never a client-supplied value.
func CreateReview(input lib.ReviewInput, author users.User) (*models.ReviewResponse, *utils.ServiceError) {
	var movie movies.Movie
	if err := config.DB.First(&movie, input.Movie).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewServiceError(http.StatusUnprocessableEntity, "referenced movie does not exist")
		}
		return nil, utils.NewServiceError(http.StatusInternalServerError, "failed to load movie")
	}

	review := models.Review{
		MovieID: input.Movie,
		UserID:  author.ID,
		Rating:  input.Rating,
		Title:   input.Title,
		Body:    input.Body,
	}

	if err := config.DB.Create(&review).Error; err != nil {
		return nil, translateReviewWriteError(err)
	}
	return GetReview(review.ID)
}

// UpdateReview replaces every writable field of the review.
func UpdateReview(id uint, input lib.ReviewInput) (*models.ReviewResponse, *utils.ServiceError) {
	review, serviceErr := loadReview(id)
	if serviceErr != nil {
		return nil, serviceErr
	}

	review.MovieID = input.Movie
	review.Rating = input.Rating
	review.Title = input.Title
	review.Body = input.Body

	if err := config.DB.Omit("User", "Movie", "LikedBy").Save(review).Error; err != nil {
		return nil, translateReviewWriteError(err)
	}
	return GetReview(review.ID)
}

// PatchReview applies only the fields present in the partial write shape.
func PatchReview(id uint, input lib.ReviewUpdateInput) (*models.ReviewResponse, *utils.ServiceError) {
	review, serviceErr := loadReview(id)
	if serviceErr != nil {
		return nil, serviceErr
	}

	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Title != nil {
		review.Title = *input.Title
	}
	if input.Body != nil {
		review.Body = *input.Body
	}

	if err := config.DB.Omit("User", "Movie", "LikedBy").Save(review).Error; err != nil {
		return nil, translateReviewWriteError(err)
	}
	return GetReview(review.ID)
}

// DeleteReview removes a single review and its likes. The movie and other
// reviews are untouched.
func DeleteReview(id uint) *utils.ServiceError {
	review, serviceErr := loadReview(id)
	if serviceErr != nil {
		return serviceErr
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM review_likes WHERE review_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Review{}, review.ID).Error
	})
	if err != nil {
		return utils.NewServiceError(http.StatusInternalServerError, "failed to delete review")
	}
	return nil
}

// LikeReview adds the caller to the liked_by set. Liking twice is a no-op.
func LikeReview(id uint, caller users.User) (*models.ReviewResponse, *utils.ServiceError) {
	review, serviceErr := loadReview(id)
	if serviceErr != nil {
		return nil, serviceErr
	}

	if err := config.DB.Model(review).Association("LikedBy").Append(&caller); err != nil {
		return nil, utils.NewServiceError(http.StatusInternalServerError, "failed to like review")
	}
	return GetReview(review.ID)
}

// UnlikeReview removes the caller from the liked_by set. Unliking a review
// that was never liked is a no-op.
func UnlikeReview(id uint, caller users.User) (*models.ReviewResponse, *utils.ServiceError) {
	review, serviceErr := loadReview(id)
	if serviceErr != nil {
		return nil, serviceErr
	}

	if err := config.DB.Model(review).Association("LikedBy").Delete(&caller); err != nil {
		return nil, utils.NewServiceError(http.StatusInternalServerError, "failed to unlike review")
	}
	return GetReview(review.ID)
}

func loadReview(id uint) (*models.Review, *utils.ServiceError) {
	var review models.Review
	if err := config.DB.Preload("User").Preload("LikedBy").First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewServiceError(http.StatusNotFound, "review not found")
		}
		return nil, utils.NewServiceError(http.StatusInternalServerError, "failed to load review")
	}
	return &review, nil
}

func translateReviewWriteError(err error) *utils.ServiceError {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return utils.NewServiceError(http.StatusUnprocessableEntity, "a review by this user for this movie already exists")
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return utils.NewServiceError(http.StatusUnprocessableEntity, "rating must be between 1 and 5")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return utils.NewServiceError(http.StatusUnprocessableEntity, "referenced record does not exist")
	default:
		return utils.NewServiceError(http.StatusInternalServerError, "failed to write review")
	}
}
