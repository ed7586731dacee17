package client

import (
	"context"
	"fmt"
	"io"
	"storefront-backend/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const profileImageFolder = "user-profile"

type ImageUploader interface {
	UploadProfileImage(ctx context.Context, file io.Reader) (string, error)
}

type cloudinaryClientImpl struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryClient(cloudinaryCfg *config.Cloudinary) (ImageUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudinaryCfg.Name, cloudinaryCfg.APIKey, cloudinaryCfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &cloudinaryClientImpl{cld: cld}, nil
}

// UploadProfileImage stores the image and returns its https URL.
func (c *cloudinaryClientImpl) UploadProfileImage(ctx context.Context, file io.Reader) (string, error) {
	res, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       profileImageFolder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}

	return res.SecureURL, nil
}
