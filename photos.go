package folio

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/eringen/folio/media"
)

const (
	maxUploadFiles       = 10
	defaultPhotoCategory = "all"
)

func (a *App) handleListPhotos(c echo.Context) error {
	photos, err := a.Cache.Photos(strings.TrimSpace(c.QueryParam("category")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, photos)
}

// handleUpload stores every file in the "photos" field and writes one record
// per file. Files are processed in order; a failure stops the request and
// leaves earlier photos in place.
func (a *App) handleUpload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected a multipart form").SetInternal(err)
	}
	files := form.File["photos"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no photos provided")
	}
	if len(files) > maxUploadFiles {
		return echo.NewHTTPError(http.StatusBadRequest, "at most 10 photos per upload")
	}
	category := strings.TrimSpace(c.FormValue("category"))
	if category == "" {
		category = defaultPhotoCategory
	}

	// Validate everything before the first file reaches the media store.
	uploads := make([]media.Upload, 0, len(files))
	for _, fh := range files {
		up, err := readUpload(fh)
		if err != nil {
			return err
		}
		uploads = append(uploads, up)
	}

	created := make([]Photo, 0, len(uploads))
	defer func() {
		if len(created) > 0 {
			a.Cache.Invalidate()
		}
	}()
	for _, up := range uploads {
		asset, err := a.saveUpload(c, up)
		if err != nil {
			a.Log.WithError(err).WithFields(logrus.Fields{
				"file":  up.Filename,
				"saved": len(created),
			}).Error("photo upload failed")
			return err
		}
		photo := Photo{
			ID:          asset.ID,
			URL:         asset.URL,
			OriginalURL: asset.OriginalURL,
			Category:    category,
			Title:       titleFromFilename(up.Filename),
			Width:       asset.Width,
			Height:      asset.Height,
			Date:        formatTime(a.now()),
		}
		if err := a.Store.CreatePhoto(photo); err != nil {
			a.discardAsset(c.Request().Context(), asset.ID)
			return echo.NewHTTPError(http.StatusInternalServerError, "upload failed: could not save photo record").SetInternal(err)
		}
		created = append(created, photo)
	}

	a.Log.WithFields(logrus.Fields{
		"count":    len(created),
		"category": category,
		"admin":    CurrentAdmin(c),
	}).Info("photos uploaded")
	return c.JSON(http.StatusCreated, created)
}

func (a *App) handleDeletePhoto(c echo.Context) error {
	id := strings.TrimSpace(c.QueryParam("id"))
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	if _, err := a.Store.GetPhoto(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "photo not found")
		}
		return err
	}

	a.discardAsset(c.Request().Context(), id)

	if err := a.Store.DeletePhoto(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "photo not found")
		}
		return err
	}
	a.Cache.Invalidate()
	a.Log.WithField("id", id).WithField("admin", CurrentAdmin(c)).Info("photo deleted")
	return c.JSON(http.StatusOK, apiMessage{Message: "deleted"})
}

// discardUnsaved removes an asset stored earlier in a request whose record
// could not be written. Empty ids are ignored.
func (a *App) discardUnsaved(c echo.Context, id string) {
	if id != "" {
		a.discardAsset(c.Request().Context(), id)
	}
}

// discardAsset deletes a stored image. Failures are logged and otherwise
// ignored so metadata cleanup always proceeds.
func (a *App) discardAsset(ctx context.Context, id string) {
	if err := a.Media.Delete(ctx, id); err != nil {
		a.Log.WithError(err).WithField("id", id).Warn("media delete failed")
	}
}
