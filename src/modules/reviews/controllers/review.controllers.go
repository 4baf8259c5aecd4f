package reviews

import (
	"cinelog/src/middleware"
	lib "cinelog/src/modules/reviews/lib"
	reviews "cinelog/src/modules/reviews/services"
	"cinelog/src/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func ListReviews(c *gin.Context) {
	res, e := reviews.ListReviews()
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func GetReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, e := reviews.GetReview(id)
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.JSON(http.StatusOK, res)
}

func CreateReview(c *gin.Context) {
	caller, ok := middleware.UserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var input lib.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RenderBindingError(c, err)
		return
	}

	res, e := reviews.CreateReview(input, caller)
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.JSON(http.StatusCreated, res)
}

func UpdateReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input lib.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RenderBindingError(c, err)
		return
	}

	res, e := reviews.UpdateReview(id, input)
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.JSON(http.StatusOK, res)
}

func PatchReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input lib.ReviewUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RenderBindingError(c, err)
		return
	}

	res, e := reviews.PatchReview(id, input)
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.JSON(http.StatusOK, res)
}

func DeleteReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if e := reviews.DeleteReview(id); e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.Status(http.StatusNoContent)
}

func LikeReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	caller, ok := middleware.UserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	res, e := reviews.LikeReview(id, caller)
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.JSON(http.StatusOK, res)
}

func UnlikeReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	caller, ok := middleware.UserFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	res, e := reviews.UnlikeReview(id, caller)
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.JSON(http.StatusOK, res)
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}
