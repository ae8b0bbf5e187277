package endpoints

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nightjar-labs/marquee/internal/http/api"
	"github.com/nightjar-labs/marquee/internal/model"
	"github.com/nightjar-labs/marquee/internal/storage"
)

// saveContentUpload handles the shared multipart flow for schedule-group and
// content-group uploads: classify the media kind, persist the bytes, insert
// the item at the end of the group's order.
func saveContentUpload(ctx *gin.Context, storageSystem storage.Storage, owner model.ContentItem) (model.ContentItem, *api.Error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return model.ContentItem{}, &api.Error{Code: http.StatusBadRequest, Message: "missing file"}
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	var kind string
	switch {
	case strings.HasPrefix(mimeType, "video/"):
		kind = model.ContentKindVideo
	case strings.HasPrefix(mimeType, "image/"):
		kind = model.ContentKindImage
	default:
		return model.ContentItem{}, &api.Error{Code: http.StatusBadRequest, Message: "unsupported file type"}
	}

	filename, url, err := storageSystem.SaveFile(fileHeader, storage.DirContent)
	if err != nil {
		return model.ContentItem{}, &api.Error{Code: http.StatusInternalServerError, Message: "could not store file"}
	}

	item := owner
	item.Name = ctx.PostForm("name")
	if item.Name == "" {
		item.Name = fileHeader.Filename
	}
	item.Filename = filename
	item.URL = url
	item.Kind = kind
	item.MimeType = mimeType
	item.FileSize = fileHeader.Size
	item.ScaleMode = model.ScaleFit

	// videos default to their intrinsic duration, images to 10s
	if kind == model.ContentKindImage {
		item.DisplayDuration = 10
	}
	if v := ctx.PostForm("display_duration"); v != "" {
		if d, err := strconv.ParseFloat(v, 64); err == nil && d > 0 {
			item.DisplayDuration = d
		}
	}
	// intrinsic media duration, reported by the uploader for videos
	if v := ctx.PostForm("duration"); v != "" {
		if d, err := strconv.ParseFloat(v, 64); err == nil && d > 0 {
			item.Duration = &d
		}
	}

	return item, nil
}
