package folio

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/eringen/folio/media"
)

// apiMessage is the body of every error response and of plain acknowledgements.
type apiMessage struct {
	Message string `json:"message"`
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		a.Log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request().Method,
			"uri":    c.Request().RequestURI,
		}).Error("server error")
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, apiMessage{Message: msg})
	}
	if err != nil {
		a.Log.WithError(err).Warn("write error response")
	}
}

func (a *App) handleHealth(c echo.Context) error {
	if err := a.Store.Ping(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable").SetInternal(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"media":  a.Media.Name(),
	})
}

// readUpload loads one multipart file into memory after checking its size
// and content type.
func readUpload(fh *multipart.FileHeader) (media.Upload, error) {
	if fh.Size > media.MaxUploadSize {
		return media.Upload{}, echo.NewHTTPError(http.StatusBadRequest, fh.Filename+": file too large (max 10MB)")
	}
	ct := fh.Header.Get(echo.HeaderContentType)
	if !media.IsImageContentType(ct) {
		return media.Upload{}, echo.NewHTTPError(http.StatusBadRequest, fh.Filename+": only image files can be uploaded")
	}
	src, err := fh.Open()
	if err != nil {
		return media.Upload{}, err
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, media.MaxUploadSize+1))
	if err != nil {
		return media.Upload{}, err
	}
	if len(data) > media.MaxUploadSize {
		return media.Upload{}, echo.NewHTTPError(http.StatusBadRequest, fh.Filename+": file too large (max 10MB)")
	}
	return media.Upload{Filename: fh.Filename, ContentType: ct, Data: data}, nil
}

// saveUpload stores up in the media store. Undecodable images are the
// client's fault; anything else is reported as an upload failure with the
// underlying message.
func (a *App) saveUpload(c echo.Context, up media.Upload) (media.Asset, error) {
	asset, err := a.Media.Save(c.Request().Context(), up)
	if err == nil {
		return asset, nil
	}
	if errors.Is(err, media.ErrUnsupportedImage) {
		return media.Asset{}, echo.NewHTTPError(http.StatusBadRequest, up.Filename+": unsupported image").SetInternal(err)
	}
	return media.Asset{}, echo.NewHTTPError(http.StatusInternalServerError, "upload failed: "+err.Error()).SetInternal(err)
}

// saveFormImage stores the file sent in field, if any. ok is false when the
// request carries no file under that name.
func (a *App) saveFormImage(c echo.Context, field string) (asset media.Asset, ok bool, err error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return media.Asset{}, false, nil
		}
		return media.Asset{}, false, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form").SetInternal(err)
	}
	up, err := readUpload(fh)
	if err != nil {
		return media.Asset{}, false, err
	}
	asset, err = a.saveUpload(c, up)
	if err != nil {
		return media.Asset{}, false, err
	}
	return asset, true, nil
}
