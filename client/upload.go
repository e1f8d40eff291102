package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize is the largest image the uploader accepts.
const MaxImageSize = 2 << 20

// ImageUploader posts images to a Cloudinary-compatible unsigned upload
// endpoint. Only the returned URL ever reaches the blog API.
type ImageUploader struct {
	Endpoint string
	Preset   string
	HTTP     *http.Client
}

func NewImageUploader(endpoint, preset string) *ImageUploader {
	return &ImageUploader{
		Endpoint: endpoint,
		Preset:   preset,
		HTTP:     &http.Client{Timeout: time.Minute},
	}
}

// CloudinaryEndpoint is the image upload URL for a cloud name.
func CloudinaryEndpoint(cloudName string) string {
	return "https://api.cloudinary.com/v1_1/" + cloudName + "/image/upload"
}

// Upload sends the image and returns its secure URL. progress, when set,
// receives percentages as the body is written.
func (u *ImageUploader) Upload(ctx context.Context, filename string, r io.Reader, progress func(int)) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxImageSize {
		return "", ErrUploadFailed
	}
	if !strings.HasPrefix(mimetype.Detect(data).String(), "image/") {
		return "", ErrInvalidFileType
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("upload_preset", u.Preset); err != nil {
		return "", err
	}
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	total := int64(body.Len())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.Endpoint, &progressReader{r: &body, total: total, report: progress})
	if err != nil {
		return "", err
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var out struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.SecureURL == "" {
		return "", ErrUploadFailed
	}
	return out.SecureURL, nil
}

type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   int
	report func(int)
	mu     sync.Mutex
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.read += int64(n)
	if p.report != nil && p.total > 0 {
		percent := int(p.read * 100 / p.total)
		if percent != p.last {
			p.last = percent
			p.report(percent)
		}
	}
	return n, err
}
