package movies

import (
	"cinelog/src/config"
	lib "cinelog/src/modules/movies/lib"
	models "cinelog/src/modules/movies/models"
	reviews "cinelog/src/modules/reviews/models"
	"cinelog/src/utils"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MovieResponse is the read shape: the stored movie plus nested genres,
// nested reviews and the rating aggregates computed fresh on every read.
type MovieResponse struct {
	models.Movie
	AverageRating float64                  `json:"average_rating"`
	ReviewCount   int64                    `json:"review_count"`
	Reviews       []reviews.ReviewResponse `json:"reviews"`
}

type ratingAggregate struct {
	MovieID       uint
	AverageRating float64
	ReviewCount   int64
}

// ListMovies returns the paginated movie list with search and ordering.
func ListMovies(q lib.MovieListQuery) (map[string]interface{}, *utils.ServiceError) {
	applyFilters := func(db *gorm.DB) *gorm.DB {
		if q.Search != "" {
			like := "%" + strings.ToLower(q.Search) + "%"
			db = db.Where(
				"LOWER(title) LIKE ? OR LOWER(director) LIKE ? OR LOWER(language) LIKE ? OR LOWER(country) LIKE ?",
				like, like, like, like,
			)
		}
		return db
	}

	var total int64
	if err := applyFilters(config.DB.Model(&models.Movie{})).Count(&total).Error; err != nil {
		return nil, utils.NewServiceError(http.StatusInternalServerError, "failed to count movies")
	}

	query := applyFilters(config.DB.Model(&models.Movie{}))

	field := strings.TrimPrefix(q.Ordering, "-")
	desc := strings.HasPrefix(q.Ordering, "-")
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	switch field {
	case "average_rating":
		// Aggregate ordering needs the reviews joined into the same query so
		// the ranking always reflects current stored ratings.
		query = query.
			Select("movies.*").
			Joins("LEFT JOIN reviews ON reviews.movie_id = movies.id").
			Group("movies.id").
			Order("COALESCE(AVG(reviews.rating), 0) " + direction)
	case "title":
		query = query.Order("LOWER(title) " + direction)
	case "release_date":
		query = query.Order("release_date " + direction)
	case "created_at":
		query = query.Order("created_at " + direction)
	default:
		query = query.Order("created_at DESC")
	}

	offset := (q.Page - 1) * q.Limit
	var list []models.Movie
	if err := query.Limit(q.Limit).Offset(offset).Preload("Genres").Find(&list).Error; err != nil {
		return nil, utils.NewServiceError(http.StatusInternalServerError, "failed to list movies")
	}

	responses, serviceErr := buildMovieResponses(list)
	if serviceErr != nil {
		return nil, serviceErr
	}

	return gin.H{
		"items":      responses,
		"pagination": utils.Paginate(total, q.Page, q.Limit),
	}, nil
}

// GetMovie returns a single movie in its read shape.
func GetMovie(id uint) (*MovieResponse, *utils.ServiceError) {
	var movie models.Movie
	if err := config.DB.Preload("Genres").First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewServiceError(http.StatusNotFound, "movie not found")
		}
		return nil, utils.NewServiceError(http.StatusInternalServerError, "failed to load movie")
	}

	responses, serviceErr := buildMovieResponses([]models.Movie{movie})
	if serviceErr != nil {
		return nil, serviceErr
	}
	return &responses[0], nil
}

// CreateMovie stores a new movie from its write shape. The slug is derived
// from the title, with a numeric suffix when the plain slug is already taken.
func CreateMovie(input lib.MovieInput) (*MovieResponse, *utils.ServiceError) {
	genres, serviceErr := resolveGenres(input.GenreIDs)
	if serviceErr != nil {
		return nil, serviceErr
	}

	slug, serviceErr := nextFreeSlug(utils.Slugify(input.Title))
	if serviceErr != nil {
		return nil, serviceErr
	}

	movie := models.Movie{
		Title:       input.Title,
		Slug:        slug,
		Description: input.Description,
		ReleaseDate: parseReleaseDate(input.ReleaseDate),
		Duration:    input.Duration,
		Director:    input.Director,
		Language:    input.Language,
		Country:     input.Country,
		PosterURL:   input.PosterURL,
		Genres:      genres,
	}

	if err := config.DB.Create(&movie).Error; err != nil {
		return nil, translateWriteError(err)
	}
	return GetMovie(movie.ID)
}

// UpdateMovie replaces every writable field. The slug is fixed at creation
// and never recomputed.
func UpdateMovie(id uint, input lib.MovieInput) (*MovieResponse, *utils.ServiceError) {
	var movie models.Movie
	if err := config.DB.First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewServiceError(http.StatusNotFound, "movie not found")
		}
		return nil, utils.NewServiceError(http.StatusInternalServerError, "failed to load movie")
	}

	genres, serviceErr := resolveGenres(input.GenreIDs)
	if serviceErr != nil {
		return nil, serviceErr
	}

	movie.Title = input.Title
	movie.Description = input.Description
	movie.ReleaseDate = parseReleaseDate(input.ReleaseDate)
	movie.Duration = input.Duration
	movie.Director = input.Director
	movie.Language = input.Language
	movie.Country = input.Country
	movie.PosterURL = input.PosterURL

	if serviceErr := saveMovieWithGenres(&movie, genres); serviceErr != nil {
		return nil, serviceErr
	}
	return GetMovie(movie.ID)
}

// PatchMovie applies only the fields present in the partial write shape.
func PatchMovie(id uint, input lib.MovieUpdateInput) (*MovieResponse, *utils.ServiceError) {
	var movie models.Movie
	if err := config.DB.Preload("Genres").First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewServiceError(http.StatusNotFound, "movie not found")
		}
		return nil, utils.NewServiceError(http.StatusInternalServerError, "failed to load movie")
	}

	if input.Title != nil {
		movie.Title = *input.Title
	}
	if input.Description != nil {
		movie.Description = *input.Description
	}
	if input.ReleaseDate != nil {
		movie.ReleaseDate = parseReleaseDate(input.ReleaseDate)
	}
	if input.Duration != nil {
		movie.Duration = input.Duration
	}
	if input.Director != nil {
		movie.Director = *input.Director
	}
	if input.Language != nil {
		movie.Language = *input.Language
	}
	if input.Country != nil {
		movie.Country = *input.Country
	}
	if input.PosterURL != nil {
		movie.PosterURL = *input.PosterURL
	}

	genres := movie.Genres
	if input.GenreIDs != nil {
		resolved, serviceErr := resolveGenres(*input.GenreIDs)
		if serviceErr != nil {
			return nil, serviceErr
		}
		genres = resolved
	}

	if serviceErr := saveMovieWithGenres(&movie, genres); serviceErr != nil {
		return nil, serviceErr
	}
	return GetMovie(movie.ID)
}

// DeleteMovie removes the movie together with its reviews, their likes and
// its genre associations in one transaction.
func DeleteMovie(id uint) *utils.ServiceError {
	var movie models.Movie
	if err := config.DB.First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewServiceError(http.StatusNotFound, "movie not found")
		}
		return utils.NewServiceError(http.StatusInternalServerError, "failed to load movie")
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM review_likes WHERE review_id IN (SELECT id FROM reviews WHERE movie_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", id).Delete(&reviews.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM movie_genres WHERE movie_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Movie{}, id).Error
	})
	if err != nil {
		return utils.NewServiceError(http.StatusInternalServerError, "failed to delete movie")
	}
	return nil
}

func saveMovieWithGenres(movie *models.Movie, genres []models.Genre) *utils.ServiceError {
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Genres").Save(movie).Error; err != nil {
			return err
		}
		return tx.Model(movie).Association("Genres").Replace(genres)
	})
	if err != nil {
		return translateWriteError(err)
	}
	return nil
}

// resolveGenres loads the referenced genres and rejects unknown identifiers.
func resolveGenres(ids []uint) ([]models.Genre, *utils.ServiceError) {
	if len(ids) == 0 {
		return []models.Genre{}, nil
	}
	var genres []models.Genre
	if err := config.DB.Where("id IN ?", ids).Find(&genres).Error; err != nil {
		return nil, utils.NewServiceError(http.StatusInternalServerError, "failed to load genres")
	}
	found := make(map[uint]bool, len(genres))
	for _, g := range genres {
		found[g.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, utils.NewServiceError(http.StatusUnprocessableEntity, fmt.Sprintf("unknown genre id %d", id))
		}
	}
	return genres, nil
}

// nextFreeSlug disambiguates duplicate titles with a numeric suffix. The
// unique index on movies.slug stays the backstop for concurrent creates.
func nextFreeSlug(base string) (string, *utils.ServiceError) {
	if base == "" {
		base = "movie"
	}

	var existing []string
	if err := config.DB.Model(&models.Movie{}).
		Where("slug = ? OR slug LIKE ?", base, base+"-%").
		Pluck("slug", &existing).Error; err != nil {
		return "", utils.NewServiceError(http.StatusInternalServerError, "failed to derive slug")
	}

	taken := make(map[string]bool, len(existing))
	for _, s := range existing {
		taken[s] = true
	}
	if !taken[base] {
		return base, nil
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !taken[candidate] {
			return candidate, nil
		}
	}
}

func parseReleaseDate(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	// Format already validated by the binding layer.
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil
	}
	return &t
}

func translateWriteError(err error) *utils.ServiceError {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return utils.NewServiceError(http.StatusUnprocessableEntity, "duplicate value violates a uniqueness constraint")
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return utils.NewServiceError(http.StatusUnprocessableEntity, "value violates a check constraint")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return utils.NewServiceError(http.StatusUnprocessableEntity, "referenced record does not exist")
	default:
		return utils.NewServiceError(http.StatusInternalServerError, "failed to write movie")
	}
}

// buildMovieResponses attaches aggregates and nested reviews to each movie.
// Both are recomputed from the reviews table on every call, never stored.
func buildMovieResponses(list []models.Movie) ([]MovieResponse, *utils.ServiceError) {
	ids := make([]uint, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.ID)
	}

	aggregates := map[uint]ratingAggregate{}
	reviewsByMovie := map[uint][]reviews.ReviewResponse{}
	if len(ids) > 0 {
		var rows []ratingAggregate
		if err := config.DB.Model(&reviews.Review{}).
			Select("movie_id, COALESCE(AVG(rating), 0) AS average_rating, COUNT(id) AS review_count").
			Where("movie_id IN ?", ids).
			Group("movie_id").
			Scan(&rows).Error; err != nil {
			return nil, utils.NewServiceError(http.StatusInternalServerError, "failed to aggregate ratings")
		}
		for _, row := range rows {
			aggregates[row.MovieID] = row
		}

		var nested []reviews.Review
		if err := config.DB.Preload("User").Preload("LikedBy").
			Where("movie_id IN ?", ids).
			Order("created_at DESC").
			Find(&nested).Error; err != nil {
			return nil, utils.NewServiceError(http.StatusInternalServerError, "failed to load reviews")
		}
		for _, r := range nested {
			reviewsByMovie[r.MovieID] = append(reviewsByMovie[r.MovieID], reviews.NewReviewResponse(r))
		}
	}

	responses := make([]MovieResponse, 0, len(list))
	for _, m := range list {
		agg := aggregates[m.ID]
		nested := reviewsByMovie[m.ID]
		if nested == nil {
			nested = []reviews.ReviewResponse{}
		}
		responses = append(responses, MovieResponse{
			Movie:         m,
			AverageRating: agg.AverageRating,
			ReviewCount:   agg.ReviewCount,
			Reviews:       nested,
		})
	}
	return responses, nil
}
