package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"

	"github.com/brandlens/photogen/common/client"
	"github.com/brandlens/photogen/common/config"
	"github.com/brandlens/photogen/common/logger"
	"github.com/brandlens/photogen/common/random"
	"github.com/brandlens/photogen/generate"
	"github.com/brandlens/photogen/model"
)

var extByMime = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// Persister uploads generated images to the object store and records a
// generation row for queue-relayed requests.
type Persister struct {
	BaseURL    string
	ServiceKey string
	Bucket     string
	HTTPClient *http.Client
}

func NewPersister() *Persister {
	return &Persister{
		BaseURL:    config.StorageBaseURL,
		ServiceKey: config.StorageServiceKey,
		Bucket:     config.StorageBucket,
		HTTPClient: client.HTTPClient,
	}
}

func (p *Persister) Persist(ctx context.Context, out *generate.BackendOutput, req *generate.Request) (string, error) {
	url, err := p.upload(ctx, out, req.UserId)
	if err != nil {
		return "", err
	}
	if req.QueueInternal {
		// bookkeeping only, the image is already stored
		if err := recordGeneration(req, url); err != nil {
			logger.Errorf(ctx, "recording generation row failed: %s", err.Error())
		}
	}
	return url, nil
}

func (p *Persister) upload(ctx context.Context, out *generate.BackendOutput, userId int) (string, error) {
	if p.BaseURL == "" {
		return "", errors.New("storage base url not configured")
	}
	raw, err := base64.StdEncoding.DecodeString(out.ImageB64)
	if err != nil {
		return "", errors.Wrap(err, "decode image data")
	}

	ext, ok := extByMime[out.MimeType]
	if !ok {
		ext = ".png"
	}
	objectPath := fmt.Sprintf("%d/%s%s", userId, random.GetUUID(), ext)
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", strings.TrimSuffix(p.BaseURL, "/"), p.Bucket, objectPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(raw))
	if err != nil {
		return "", errors.Wrap(err, "new request")
	}
	req.Header.Set("Authorization", "Bearer "+p.ServiceKey)
	req.Header.Set("Content-Type", out.MimeType)

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "upload image")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", errors.Errorf("storage returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", strings.TrimSuffix(p.BaseURL, "/"), p.Bucket, objectPath), nil
}

func recordGeneration(req *generate.Request, url string) error {
	generation := model.Generation{}
	if err := copier.Copy(&generation, req); err != nil {
		return err
	}
	generation.UserId = req.UserId
	generation.ImageUrl = url
	return generation.Insert()
}
