package handler

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/streamhub/video-platform-go/internal/feed"
)

// pageRequest reads the page/limit query parameters. Absent or malformed
// values fall back to the pagination defaults downstream.
func pageRequest(c *gin.Context) feed.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return feed.PageRequest{Page: page, Limit: limit}
}

// spoolUpload writes a multipart file to a temp path so it can be probed and
// streamed to object storage. The returned cleanup removes the temp file.
func spoolUpload(c *gin.Context, fh *multipart.FileHeader) (string, func(), error) {
	path := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, path); err != nil {
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}
