package media

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	cloudinaryFolder = "portfolio"
	// Width capped at 1200 px, automatic quality.
	cloudinaryTransformation = "c_limit,w_1200/q_auto"
)

// Cloudinary uploads images to a Cloudinary account.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinary builds a Cloudinary store from account credentials.
func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, folder: cloudinaryFolder}, nil
}

// Name implements Store.
func (c *Cloudinary) Name() string { return DriverCloudinary }

// Save implements Store. The asset id is Cloudinary's public id, which may
// contain the folder prefix ("portfolio/abc123").
func (c *Cloudinary) Save(ctx context.Context, up Upload) (Asset, error) {
	resp, err := c.cld.Upload.Upload(ctx, bytes.NewReader(up.Data), uploader.UploadParams{
		Folder:         c.folder,
		Transformation: cloudinaryTransformation,
	})
	if err != nil {
		return Asset{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return Asset{}, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return Asset{
		ID:          resp.PublicID,
		URL:         resp.SecureURL,
		OriginalURL: resp.SecureURL,
		Width:       resp.Width,
		Height:      resp.Height,
	}, nil
}

// Delete implements Store. A public id Cloudinary does not know is not an error.
func (c *Cloudinary) Delete(ctx context.Context, id string) error {
	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", resp.Error.Message)
	}
	switch resp.Result {
	case "ok", "not found":
		return nil
	default:
		return fmt.Errorf("cloudinary destroy %s: %s", id, resp.Result)
	}
}
