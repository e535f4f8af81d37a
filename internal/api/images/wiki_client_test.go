package images

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWiki(t *testing.T, handler http.Handler) *WikiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWikiClient(WikiConfig{
		RestBaseURL:   srv.URL + "/rest",
		ActionBaseURL: srv.URL + "/w/api.php",
		UserAgent:     "voyage-test",
		UpscaleWidth:  1280,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestWikiClient_Summary(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/page/summary/Eiffel_Tower", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "voyage-test", r.Header.Get("User-Agent"))
		fmt.Fprint(w, `{
			"title": "Eiffel Tower",
			"thumbnail": {"source": "https://upload.example/thumb/a/ab/Tower.jpg/320px-Tower.jpg", "width": 320},
			"originalimage": {"source": "https://upload.example/a/ab/Tower.jpg", "width": 4000}
		}`)
	})

	c := newTestWiki(t, mux)
	urls, err := c.Summary(context.Background(), "Eiffel Tower")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://upload.example/a/ab/Tower.jpg",
		"https://upload.example/thumb/a/ab/Tower.jpg/1280px-Tower.jpg",
	}, urls)
}

func TestWikiClient_Summary_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/page/summary/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"type":"not_found"}`, http.StatusNotFound)
	})

	c := newTestWiki(t, mux)
	urls, err := c.Summary(context.Background(), "Nowhereland")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
	assert.Empty(t, urls)
}

func TestWikiClient_Summary_NoImage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/page/summary/Smalltown", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"title": "Smalltown"}`)
	})

	c := newTestWiki(t, mux)
	urls, err := c.Summary(context.Background(), "Smalltown")

	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestWikiClient_PageImages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/w/api.php", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "pageimages", q.Get("prop"))
		assert.Equal(t, "Kyoto", q.Get("titles"))
		assert.Equal(t, "640", q.Get("pithumbsize"))
		fmt.Fprint(w, `{"query":{"pages":{"1234":{
			"title":"Kyoto",
			"thumbnail":{"source":"https://upload.example/thumb/Kyoto.jpg/640px-Kyoto.jpg"},
			"original":{"source":"https://upload.example/Kyoto.jpg"}
		}}}}`)
	})

	c := newTestWiki(t, mux)
	urls, err := c.PageImages(context.Background(), "Kyoto")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://upload.example/thumb/Kyoto.jpg/640px-Kyoto.jpg",
		"https://upload.example/Kyoto.jpg",
	}, urls)
}

func TestWikiClient_MediaFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/w/api.php", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch q.Get("prop") {
		case "images":
			fmt.Fprint(w, `{"query":{"pages":{"22989":{"title":"Paris","images":[
				{"title":"File:Flag of France.svg"},
				{"title":"File:Paris montage.jpg"},
				{"title":"File:Commons-logo.svg"},
				{"title":"File:Paris location map.png"},
				{"title":"File:Eiffel Tower at night.JPG"},
				{"title":"File:Coat of arms of Paris.png"},
				{"title":"File:Louvre.webp"},
				{"title":"File:Score.ogg"}
			]}}}}`)
		case "imageinfo":
			titles := strings.Split(q.Get("titles"), "|")
			assert.Equal(t, []string{"File:Paris montage.jpg", "File:Eiffel Tower at night.JPG", "File:Louvre.webp"}, titles)
			assert.Equal(t, "1280", q.Get("iiurlwidth"))
			// pages come back in id order, not request order
			fmt.Fprint(w, `{"query":{"pages":{
				"-3":{"title":"File:Louvre.webp","imageinfo":[{"url":"https://upload.example/Louvre.webp"}]},
				"-2":{"title":"File:Eiffel Tower at night.JPG","imageinfo":[{"thumburl":"https://upload.example/1280px-Eiffel.jpg","url":"https://upload.example/Eiffel.JPG"}]},
				"-1":{"title":"File:Paris montage.jpg","imageinfo":[{"thumburl":"https://upload.example/1280px-Montage.jpg"}]}
			}}}`)
		default:
			t.Errorf("unexpected prop %q", q.Get("prop"))
		}
	})

	c := newTestWiki(t, mux)
	urls, err := c.MediaFiles(context.Background(), "Paris")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://upload.example/1280px-Montage.jpg",
		"https://upload.example/1280px-Eiffel.jpg",
		"https://upload.example/Louvre.webp",
	}, urls)
}

func TestWikiClient_MediaFiles_OnlyNonPhotos(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/w/api.php", func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"query":{"pages":{"1":{"title":"X","images":[{"title":"File:Flag.svg"},{"title":"File:Wikiquote-logo.png"}]}}}}`)
	})

	c := newTestWiki(t, mux)
	urls, err := c.MediaFiles(context.Background(), "X")

	require.NoError(t, err)
	assert.Empty(t, urls)
	assert.Equal(t, 1, calls, "no imageinfo call without candidate files")
}

func TestWikiClient_MalformedJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/w/api.php", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query":`)
	})

	c := newTestWiki(t, mux)
	_, err := c.PageImages(context.Background(), "Paris")
	assert.Error(t, err)
}

func TestIsPhoto(t *testing.T) {
	assert.True(t, isPhoto("File:Sagrada Familia.jpg"))
	assert.True(t, isPhoto("File:Beach.PNG"))
	assert.False(t, isPhoto("File:Barcelona map.jpg"))
	assert.False(t, isPhoto("File:Seal of Boston.png"))
	assert.False(t, isPhoto("File:Edit-clear.svg"))
	assert.False(t, isPhoto("File:Question book-new.svg"))
	assert.False(t, isPhoto("File:Anthem.ogg"))
}

func TestUpscale(t *testing.T) {
	assert.Equal(t,
		"https://upload.example/thumb/x/X.jpg/1280px-X.jpg",
		upscale("https://upload.example/thumb/x/X.jpg/320px-X.jpg", 1280))
	assert.Equal(t, "https://upload.example/X.jpg", upscale("https://upload.example/X.jpg", 1280))
}
