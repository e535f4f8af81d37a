package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Riyasinha-01/Voyage/internal/api/destinations"
	"github.com/Riyasinha-01/Voyage/internal/api/images"
	"github.com/Riyasinha-01/Voyage/internal/api/structurer"
)

var benchmarkReply = strings.Repeat(`**Day 1: Arrival in Lisbon**
- Check in near **Alfama** and walk to Miradouro de Santa Luzia
- Dinner in Bairro Alto, then fado in Alfama
Budget: Medium
1. Take the tram to Belem
2. Try pastel de nata at *Pasteis de Belem*

### Day 2
Spend the day exploring Sintra, Cascais and Estoril.
Destination: Lisbon
`, 4)

type staticLookup struct{}

func (staticLookup) Resolve(_ context.Context, name string) []string {
	return []string{"https://upload.example.org/" + name + ".jpg"}
}

func BenchmarkStructure(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		structurer.Structure(benchmarkReply)
	}
}

func BenchmarkRenderHTML(b *testing.B) {
	blocks := structurer.Structure(benchmarkReply)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		structurer.RenderHTML(blocks)
	}
}

func BenchmarkExtract(b *testing.B) {
	e := destinations.NewExtractor()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.Extract(benchmarkReply)
	}
}

func BenchmarkStripStart(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := destinations.NewExtractor()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := images.NewStrip("bench", e, staticLookup{}, images.DefaultMaxConcurrent, logger)
		s.Start(benchmarkReply)
		s.Wait()
		s.Close()
	}
}

func BenchmarkRenderEndpoint(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Post("/render", structurer.NewHandler(logger).Render)

	body, err := json.Marshal(map[string]string{"text": benchmarkReply})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}
