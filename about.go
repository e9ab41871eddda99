package folio

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// currentAbout returns the stored about document or the default one.
func (a *App) currentAbout() (AboutContent, error) {
	about, err := a.Store.GetAbout()
	if errors.Is(err, ErrNotFound) {
		return DefaultAbout(), nil
	}
	return about, err
}

func (a *App) handleGetAbout(c echo.Context) error {
	about, err := a.currentAbout()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, about)
}

// handleSaveAbout replaces the whole document. The image is only changed when
// the request carries a new file ("image") or URL ("imageUrl").
func (a *App) handleSaveAbout(c echo.Context) error {
	prev, err := a.currentAbout()
	if err != nil {
		return err
	}

	about := AboutContent{
		ImageURL:   prev.ImageURL,
		Paragraph1: c.FormValue("paragraph1"),
		Paragraph2: c.FormValue("paragraph2"),
		Paragraph3: c.FormValue("paragraph3"),
		Experience: c.FormValue("experience"),
		Projects:   c.FormValue("projects"),
		Awards:     c.FormValue("awards"),
		UpdatedAt:  formatTime(a.now()),
	}
	asset, ok, err := a.saveFormImage(c, "image")
	if err != nil {
		return err
	}
	switch {
	case ok:
		about.ImageURL = asset.URL
	case strings.TrimSpace(c.FormValue("imageUrl")) != "":
		about.ImageURL = strings.TrimSpace(c.FormValue("imageUrl"))
	}

	if err := a.Store.SaveAbout(about); err != nil {
		a.discardUnsaved(c, asset.ID)
		return err
	}
	a.Log.WithField("admin", CurrentAdmin(c)).Info("about page saved")
	return c.JSON(http.StatusOK, about)
}
