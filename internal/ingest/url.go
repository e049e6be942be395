package ingest

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	apperrors "docanalyzer/internal/common/errors"
)

// URLResult describes a remote document fetched into the local store.
type URLResult struct {
	Path     string
	FileName string
	MimeType string
}

// ProcessURL downloads a remote resource and saves it like any other upload.
// The filename comes from Content-Disposition when present, then from the URL
// path, then from a host-plus-timestamp fallback for bare page URLs.
func (s *Ingestor) ProcessURL(ctx context.Context, rawURL string, timeout time.Duration) (*URLResult, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid URL %q", apperrors.ErrInvalidInput, rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported URL scheme %q", apperrors.ErrInvalidInput, u.Scheme)
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build URL request failed: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch URL failed: status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read URL body failed: %w", err)
	}

	filename := filenameFromResponse(resp, u)
	mimeType := mimeFromResponse(resp)

	savedPath, err := s.SaveRawFile(content, filename)
	if err != nil {
		return nil, err
	}
	return &URLResult{Path: savedPath, FileName: filename, MimeType: mimeType}, nil
}

func filenameFromResponse(resp *http.Response, u *url.URL) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := strings.TrimSpace(params["filename"]); name != "" {
				return path.Base(name)
			}
		}
	}
	if base := path.Base(u.Path); base != "" && base != "/" && base != "." {
		return base
	}
	return fmt.Sprintf("%s_%s.html", u.Host, time.Now().Format("20060102150405"))
}

func mimeFromResponse(resp *http.Response) string {
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		return "text/html"
	}
	if media, _, err := mime.ParseMediaType(ct); err == nil {
		return media
	}
	return strings.TrimSpace(strings.Split(ct, ";")[0])
}
