package reviews

// ReviewInput is the write shape for review create and full update. The
// author, timestamps and likes are server-assigned; values for them in a
// request body are not bound and therefore ignored.
type ReviewInput struct {
	Movie  uint   `json:"movie" binding:"required"`
	Rating int    `json:"rating" binding:"required,gte=1,lte=5"`
	Title  string `json:"title" binding:"max=255"`
	Body   string `json:"body"`
}

// ReviewUpdateInput is the partial-update shape: only fields present in the
// body are applied.
type ReviewUpdateInput struct {
	Rating *int    `json:"rating" binding:"omitempty,gte=1,lte=5"`
	Title  *string `json:"title" binding:"omitempty,max=255"`
	Body   *string `json:"body"`
}
