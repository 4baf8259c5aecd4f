package movies

import (
	lib "cinelog/src/modules/movies/lib"
	movies "cinelog/src/modules/movies/services"
	"cinelog/src/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func ListMovies(c *gin.Context) {
	var q lib.MovieListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RenderBindingError(c, err)
		return
	}

	res, e := movies.ListMovies(q)
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.JSON(http.StatusOK, res)
}

func GetMovie(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, e := movies.GetMovie(id)
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.JSON(http.StatusOK, res)
}

func CreateMovie(c *gin.Context) {
	var input lib.MovieInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RenderBindingError(c, err)
		return
	}

	res, e := movies.CreateMovie(input)
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.JSON(http.StatusCreated, res)
}

func UpdateMovie(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input lib.MovieInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RenderBindingError(c, err)
		return
	}

	res, e := movies.UpdateMovie(id, input)
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.JSON(http.StatusOK, res)
}

func PatchMovie(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input lib.MovieUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RenderBindingError(c, err)
		return
	}

	res, e := movies.PatchMovie(id, input)
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.JSON(http.StatusOK, res)
}

func DeleteMovie(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if e := movies.DeleteMovie(id); e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}
