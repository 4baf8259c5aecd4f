package files

import (
	files "cinelog/src/modules/files/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

func UploadPoster(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	path, e := files.UploadPoster(c.Request.Context(), header)
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"poster_url": path})
}

func GetPoster(c *gin.Context) {
	objectPath := c.Param("filepath")
	if objectPath == "" || objectPath == "/" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filepath"})
		return
	}

	reader, size, contentType, e := files.FetchPoster(c.Request.Context(), objectPath)
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Message})
		return
	}

	c.DataFromReader(http.StatusOK, size, contentType, reader, nil)
}
