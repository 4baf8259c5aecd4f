package movies

import (
	lib "cinelog/src/modules/movies/lib"
	movies "cinelog/src/modules/movies/services"
	"cinelog/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ListGenres(c *gin.Context) {
	res, e := movies.ListGenres()
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func CreateGenre(c *gin.Context) {
	var input lib.GenreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RenderBindingError(c, err)
		return
	}

	res, e := movies.CreateGenre(input)
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.JSON(http.StatusCreated, res)
}

func DeleteGenre(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if e := movies.DeleteGenre(id); e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.Status(http.StatusNoContent)
}
