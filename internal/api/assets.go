package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/gamevault/gamevault/internal/domain"
)

// uploadFile performs a multipart file upload to the given path.
// contentType sets the part's Content-Type when the server validates it
// (the theme header endpoint does); empty lets the default stand.
func (c *Client) uploadFile(ctx context.Context, path, filename, contentType string, data io.Reader, dest interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	var fw io.Writer
	var err error
	if contentType != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
		h.Set("Content-Type", contentType)
		fw, err = w.CreatePart(h)
	} else {
		fw, err = w.CreateFormFile("file", filename)
	}
	if err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(fw, data); err != nil {
		return fmt.Errorf("failed to read upload data: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload form: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType())
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	return c.decode(path, body, dest)
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}

// === Covers ===

func (c *Client) UploadCover(ctx context.Context, gameID int64, filename string, data io.Reader) (string, error) {
	var resp coverResponse
	err := c.uploadFile(ctx, fmt.Sprintf("/api/games/%d/upload-cover", gameID), filename, "", data, &resp)
	if err != nil {
		return "", mapNotFound(err, domain.ErrGameNotFound)
	}
	return resp.CoverURL, nil
}

func (c *Client) CoverFromURL(ctx context.Context, gameID int64, imageURL string) (string, error) {
	var resp coverResponse
	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/games/%d/cover-from-url", gameID),
		fromURLRequest{URL: imageURL}, &resp)
	if err != nil {
		return "", mapNotFound(err, domain.ErrGameNotFound)
	}
	return resp.CoverURL, nil
}

func (c *Client) FetchCover(ctx context.Context, gameID int64, force bool, source string) (*domain.FetchSummary, error) {
	params := url.Values{}
	if force {
		params.Set("force", "true")
	}
	if source != "" {
		params.Set("source", source)
	}

	var resp fetchResponse
	body, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/games/%d/fetch-cover", gameID), params, nil, "")
	if err != nil {
		return nil, mapNotFound(err, domain.ErrGameNotFound)
	}
	if err := c.decode("fetch-cover", body, &resp); err != nil {
		return nil, err
	}
	return &domain.FetchSummary{Updated: resp.Updated, Skipped: resp.Skipped, Title: resp.Title}, nil
}

func (c *Client) DeleteCover(ctx context.Context, gameID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/games/%d/cover", gameID), nil, nil, "")
	return mapNotFound(err, domain.ErrGameNotFound)
}

// === Screenshots ===

func (c *Client) UploadScreenshot(ctx context.Context, gameID int64, filename string, data io.Reader) (*domain.Screenshot, error) {
	var resp screenshotResponse
	err := c.uploadFile(ctx, fmt.Sprintf("/api/games/%d/upload-screenshot", gameID), filename, "", data, &resp)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrGameNotFound)
	}
	return &domain.Screenshot{ID: resp.ScreenshotID, URL: resp.URL}, nil
}

func (c *Client) ScreenshotFromURL(ctx context.Context, gameID int64, imageURL string) (*domain.Screenshot, error) {
	var resp screenshotResponse
	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/games/%d/screenshot-from-url", gameID),
		fromURLRequest{URL: imageURL}, &resp)
	if err != nil {
		return nil, mapNotFound(err, domain.ErrGameNotFound)
	}
	return &domain.Screenshot{ID: resp.ScreenshotID, URL: resp.URL}, nil
}

func (c *Client) DeleteScreenshot(ctx context.Context, screenshotID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/screenshots/%d", screenshotID), nil, nil, "")
	return mapNotFound(err, domain.ErrGameNotFound)
}

// === Metadata fetches ===

func (c *Client) FetchMetadata(ctx context.Context, gameID int64, force bool) (*domain.FetchSummary, error) {
	return c.fetchSummary(ctx, fmt.Sprintf("/api/games/%d/fetch-metadata", gameID), force, "")
}

func (c *Client) FetchScreenshots(ctx context.Context, gameID int64, force bool) (*domain.FetchSummary, error) {
	return c.fetchSummary(ctx, fmt.Sprintf("/api/games/%d/fetch-screenshots", gameID), force, "")
}

func (c *Client) FetchConsoleMetadata(ctx context.Context, consoleID int64, force bool) (*domain.FetchSummary, error) {
	return c.fetchSummary(ctx, fmt.Sprintf("/api/consoles/%d/fetch-metadata", consoleID), force, "")
}

func (c *Client) FetchConsoleCovers(ctx context.Context, consoleID int64, force bool, source string) (*domain.FetchSummary, error) {
	return c.fetchSummary(ctx, fmt.Sprintf("/api/consoles/%d/fetch-covers", consoleID), force, source)
}

func (c *Client) FetchConsoleScreenshots(ctx context.Context, consoleID int64, force bool) (*domain.FetchSummary, error) {
	return c.fetchSummary(ctx, fmt.Sprintf("/api/consoles/%d/fetch-screenshots", consoleID), force, "")
}

func (c *Client) fetchSummary(ctx context.Context, path string, force bool, source string) (*domain.FetchSummary, error) {
	params := url.Values{}
	if force {
		params.Set("force", "true")
	}
	if source != "" {
		params.Set("source", source)
	}

	body, err := c.do(ctx, http.MethodPost, path, params, nil, "")
	if err != nil {
		return nil, err
	}
	var resp fetchResponse
	if err := c.decode(path, body, &resp); err != nil {
		return nil, err
	}
	return &domain.FetchSummary{Updated: resp.Updated, Skipped: resp.Skipped, Title: resp.Title}, nil
}

// === Theme headers ===

func (c *Client) ListHeaders(ctx context.Context) ([]string, error) {
	var resp headerListResponse
	if err := c.getJSON(ctx, "/api/theme/headers", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Headers, nil
}

func (c *Client) ActiveHeader(ctx context.Context) (*domain.HeaderInfo, error) {
	var info domain.HeaderInfo
	if err := c.getJSON(ctx, "/api/theme/header", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) UploadHeader(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	var resp headerUploadResponse
	err := c.uploadFile(ctx, "/api/theme/upload-header", filename, contentType, data, &resp)
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *Client) DeleteHeader(ctx context.Context) (bool, error) {
	body, err := c.do(ctx, http.MethodDelete, "/api/theme/header", nil, nil, "")
	if err != nil {
		return false, err
	}
	var resp headerDeleteResponse
	if err := c.decode("/api/theme/header", body, &resp); err != nil {
		return false, err
	}
	return resp.Deleted, nil
}
