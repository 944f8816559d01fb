// ingestctl reads local onboarding documents (.txt/.md, or .pdf via text
// extraction) and posts them to a running getgsa API as one ingest batch.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"getgsa/internal/models"
	"getgsa/internal/util"

	"github.com/joho/godotenv"
	"github.com/ledongthuc/pdf"
)

type documentPayload struct {
	Name     string `json:"name,omitempty"`
	Text     string `json:"text"`
	TypeHint string `json:"type_hint,omitempty"`
}

type ingestResponse struct {
	RequestID string            `json:"request_id"`
	Documents []models.Document `json:"documents"`
	Error     string            `json:"error,omitempty"`
}

func main() {
	_ = godotenv.Load(".env")

	apiBase := flag.String("api", envOr("GETGSA_API_BASE", "http://localhost:8080"), "getgsa API base URL")
	typeHint := flag.String("hint", "", "optional type hint applied to every document (profile|past_performance|pricing)")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: ingestctl [-api URL] [-hint TYPE] file...")
		os.Exit(2)
	}

	docs := make([]documentPayload, 0, len(paths))
	for _, path := range paths {
		text, err := readDocument(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
			os.Exit(1)
		}
		docs = append(docs, documentPayload{Name: filepath.Base(path), Text: text, TypeHint: *typeHint})
	}

	resp, err := postIngest(*apiBase, docs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("request_id: %s\n", resp.RequestID)
	for _, d := range resp.Documents {
		fmt.Printf("  %-30s %s\n", d.Name, d.ClassifiedType)
	}
}

func readDocument(path string) (string, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return extractPDFText(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := util.SanitizeText(string(data))
	if text == "" {
		return "", fmt.Errorf("no text content")
	}
	return text, nil
}

func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, reader); err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}
	text := util.SanitizeText(buf.String())
	if text == "" {
		return "", fmt.Errorf("no extractable text found in PDF")
	}
	return text, nil
}

func postIngest(apiBase string, docs []documentPayload) (*ingestResponse, error) {
	payload, err := json.Marshal(map[string]any{"documents": docs})
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Post(strings.TrimRight(apiBase, "/")+"/ingest", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("post ingest: %w", err)
	}
	defer resp.Body.Close()

	var out ingestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("ingest rejected (%d): %s", resp.StatusCode, out.Error)
	}
	return &out, nil
}

func envOr(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}
