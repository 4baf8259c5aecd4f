package movies

// MovieInput is the write shape for movie create and full update. Slug,
// computed fields and nested reviews are read-only; values for them in a
// request body are simply not bound.
type MovieInput struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description string  `json:"description"`
	ReleaseDate *string `json:"release_date" binding:"omitempty,datetime=2006-01-02"`
	Duration    *int    `json:"duration" binding:"omitempty,gte=0"`
	Director    string  `json:"director" binding:"max=255"`
	Language    string  `json:"language" binding:"max=100"`
	Country     string  `json:"country" binding:"max=100"`
	PosterURL   string  `json:"poster_url" binding:"omitempty,max=512"`
	GenreIDs    []uint  `json:"genre_ids"`
}

// MovieUpdateInput is the partial-update shape: only fields present in the
// body are applied.
type MovieUpdateInput struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	ReleaseDate *string `json:"release_date" binding:"omitempty,datetime=2006-01-02"`
	Duration    *int    `json:"duration" binding:"omitempty,gte=0"`
	Director    *string `json:"director" binding:"omitempty,max=255"`
	Language    *string `json:"language" binding:"omitempty,max=100"`
	Country     *string `json:"country" binding:"omitempty,max=100"`
	PosterURL   *string `json:"poster_url" binding:"omitempty,max=512"`
	GenreIDs    *[]uint `json:"genre_ids"`
}

// MovieListQuery carries the supported list query parameters.
type MovieListQuery struct {
	Search   string `form:"search"`
	Ordering string `form:"ordering" binding:"omitempty,oneof=release_date -release_date average_rating -average_rating title -title created_at -created_at"`
	Page     int    `form:"page,default=1" binding:"omitempty,gte=1"`
	Limit    int    `form:"limit,default=20" binding:"omitempty,gte=1,lte=100"`
}

// GenreInput is the write shape for genres.
type GenreInput struct {
	Name string `json:"name" binding:"required,max=100"`
}
