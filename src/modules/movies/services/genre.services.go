package movies

import (
	"cinelog/src/config"
	lib "cinelog/src/modules/movies/lib"
	models "cinelog/src/modules/movies/models"
	"cinelog/src/utils"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

func ListGenres() ([]models.Genre, *utils.ServiceError) {
	var genres []models.Genre
	if err := config.DB.Order("name ASC").Find(&genres).Error; err != nil {
		return nil, utils.NewServiceError(http.StatusInternalServerError, "failed to list genres")
	}
	return genres, nil
}

func CreateGenre(input lib.GenreInput) (*models.Genre, *utils.ServiceError) {
	genre := models.Genre{Name: input.Name}
	if err := config.DB.Create(&genre).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewServiceError(http.StatusUnprocessableEntity, "genre with this name already exists")
		}
		return nil, utils.NewServiceError(http.StatusInternalServerError, "failed to create genre")
	}
	return &genre, nil
}

// DeleteGenre removes a genre and detaches it from movies. The movies
// themselves are untouched.
func DeleteGenre(id uint) *utils.ServiceError {
	var genre models.Genre
	if err := config.DB.First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewServiceError(http.StatusNotFound, "genre not found")
		}
		return utils.NewServiceError(http.StatusInternalServerError, "failed to load genre")
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM movie_genres WHERE genre_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Genre{}, id).Error
	})
	if err != nil {
		return utils.NewServiceError(http.StatusInternalServerError, "failed to delete genre")
	}
	return nil
}
