package images

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// ImageSource is the three-stage lookup the resolver cascades through.
type ImageSource interface {
	Summary(ctx context.Context, title string) ([]string, error)
	PageImages(ctx context.Context, title string) ([]string, error)
	MediaFiles(ctx context.Context, title string) ([]string, error)
}

var _ ImageSource = (*WikiClient)(nil)

type WikiConfig struct {
	RestBaseURL       string
	ActionBaseURL     string
	UserAgent         string
	ThumbnailWidth    int
	UpscaleWidth      int
	MaxMediaFiles     int
	RequestsPerSecond float64
	Burst             int
	HTTPTimeout       time.Duration
}

// WikiClient reads page images from a MediaWiki encyclopedia.
type WikiClient struct {
	cfg     WikiConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

var (
	thumbWidthRe = regexp.MustCompile(`/(\d+)px-`)

	// names of files that are never photographs of the place
	nonPhotoMarkers = []string{
		"flag", "logo", "coat_of_arms", "coat of arms", "map", "symbol",
		"icon", "seal", "emblem", "commons-logo", "wiki", "edit-clear",
		"question_book", "question book", "locator", "signature",
	}
	photoExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}
)

func NewWikiClient(cfg WikiConfig, logger *slog.Logger) *WikiClient {
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	if cfg.ThumbnailWidth <= 0 {
		cfg.ThumbnailWidth = 640
	}
	if cfg.UpscaleWidth <= 0 {
		cfg.UpscaleWidth = 1280
	}
	if cfg.MaxMediaFiles <= 0 {
		cfg.MaxMediaFiles = 8
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &WikiClient{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.HTTPTimeout},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// Summary returns the lead image of the page summary, original first, then
// the thumbnail rewritten to UpscaleWidth.
func (c *WikiClient) Summary(ctx context.Context, title string) ([]string, error) {
	endpoint := strings.TrimRight(c.cfg.RestBaseURL, "/") + "/page/summary/" + url.PathEscape(pageTitle(title))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("summary for %q: %w", title, err)
	}

	var urls []string
	if original := gjson.GetBytes(body, "originalimage.source").String(); original != "" {
		urls = append(urls, original)
	}
	if thumb := gjson.GetBytes(body, "thumbnail.source").String(); thumb != "" {
		urls = append(urls, upscale(thumb, c.cfg.UpscaleWidth))
	}
	return lo.Uniq(urls), nil
}

// PageImages asks the action API for the page's representative image.
func (c *WikiClient) PageImages(ctx context.Context, title string) ([]string, error) {
	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"redirects":   {"1"},
		"prop":        {"pageimages"},
		"piprop":      {"thumbnail|original"},
		"pithumbsize": {strconv.Itoa(c.cfg.ThumbnailWidth)},
		"titles":      {pageTitle(title)},
	}
	body, err := c.get(ctx, c.actionURL(params))
	if err != nil {
		return nil, fmt.Errorf("pageimages for %q: %w", title, err)
	}

	var urls []string
	gjson.GetBytes(body, "query.pages").ForEach(func(_, page gjson.Result) bool {
		if src := page.Get("thumbnail.source").String(); src != "" {
			urls = append(urls, src)
		}
		if src := page.Get("original.source").String(); src != "" {
			urls = append(urls, src)
		}
		return true
	})
	return lo.Uniq(urls), nil
}

// MediaFiles lists the files embedded in the page, drops the ones that are
// not photographs and resolves the first MaxMediaFiles in one batch.
func (c *WikiClient) MediaFiles(ctx context.Context, title string) ([]string, error) {
	params := url.Values{
		"action":    {"query"},
		"format":    {"json"},
		"redirects": {"1"},
		"prop":      {"images"},
		"imlimit":   {"50"},
		"titles":    {pageTitle(title)},
	}
	body, err := c.get(ctx, c.actionURL(params))
	if err != nil {
		return nil, fmt.Errorf("image list for %q: %w", title, err)
	}

	var files []string
	gjson.GetBytes(body, "query.pages").ForEach(func(_, page gjson.Result) bool {
		page.Get("images.#.title").ForEach(func(_, t gjson.Result) bool {
			files = append(files, t.String())
			return true
		})
		return true
	})

	files = lo.Filter(lo.Uniq(files), func(f string, _ int) bool { return isPhoto(f) })
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > c.cfg.MaxMediaFiles {
		files = files[:c.cfg.MaxMediaFiles]
	}

	infoParams := url.Values{
		"action":     {"query"},
		"format":     {"json"},
		"prop":       {"imageinfo"},
		"iiprop":     {"url"},
		"iiurlwidth": {strconv.Itoa(c.cfg.UpscaleWidth)},
		"titles":     {strings.Join(files, "|")},
	}
	body, err = c.get(ctx, c.actionURL(infoParams))
	if err != nil {
		return nil, fmt.Errorf("imageinfo for %q: %w", title, err)
	}

	// pages come back keyed by id; restore the order of the listing
	byTitle := make(map[string]string, len(files))
	gjson.GetBytes(body, "query.pages").ForEach(func(_, page gjson.Result) bool {
		info := page.Get("imageinfo.0")
		src := info.Get("thumburl").String()
		if src == "" {
			src = info.Get("url").String()
		}
		if src != "" {
			byTitle[page.Get("title").String()] = src
		}
		return true
	})

	var urls []string
	for _, f := range files {
		if src, ok := byTitle[f]; ok {
			urls = append(urls, src)
		}
	}
	return lo.Uniq(urls), nil
}

func (c *WikiClient) actionURL(params url.Values) string {
	return c.cfg.ActionBaseURL + "?" + params.Encode()
}

func (c *WikiClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	return body, nil
}

// pageTitle converts a display name into encyclopedia title form.
func pageTitle(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// upscale rewrites the "/<N>px-" segment of a thumbnail URL to width.
func upscale(thumb string, width int) string {
	return thumbWidthRe.ReplaceAllString(thumb, "/"+strconv.Itoa(width)+"px-")
}

func isPhoto(file string) bool {
	lower := strings.ToLower(file)
	if !lo.SomeBy(photoExtensions, func(ext string) bool { return strings.HasSuffix(lower, ext) }) {
		return false
	}
	name := strings.TrimPrefix(lower, "file:")
	return !lo.SomeBy(nonPhotoMarkers, func(m string) bool { return strings.Contains(name, m) })
}
