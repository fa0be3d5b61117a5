package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/Cortexa-LLC/mcp/src/labsyllabus/config"
)

var (
	// ErrUnsupportedFormat is returned for extensions no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrTooLarge is returned when input exceeds the configured size limit.
	ErrTooLarge = errors.New("document too large")
)

// Loader reads documents from local paths, file:// and http(s):// URIs, or
// memory. HTTP responses are routed by Content-Type, then by URL extension.
type Loader struct {
	formats *formatReader
	cfg     *config.Config
	client  *http.Client
}

// NewLoader creates a Loader. A nil cfg uses environment-driven config.
func NewLoader(cfg *config.Config) *Loader {
	if cfg == nil {
		cfg = config.Load()
	}
	return &Loader{
		formats: newFormatReader(),
		cfg:     cfg,
		client:  http.DefaultClient,
	}
}

// Read converts in-memory data named name (only its extension matters).
func (l *Loader) Read(name string, data []byte) ([]Page, error) {
	if int64(len(data)) > l.cfg.MaxFileSizeBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), l.cfg.MaxFileSizeBytes)
	}
	return l.formats.Read(name, data)
}

// LoadFile reads a local file.
func (l *Loader) LoadFile(_ context.Context, filePath string) ([]Page, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}
	if info.Size() > l.cfg.MaxFileSizeBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, info.Size(), l.cfg.MaxFileSizeBytes)
	}
	if !l.formats.CanRead(filePath) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return l.formats.Read(filePath, data)
}

// LoadURI reads a URI.
// Supported schemes: file://, http://, https://
func (l *Loader) LoadURI(ctx context.Context, uri string) ([]Page, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid URI: %s", uri)
	}

	switch u.Scheme {
	case "file":
		return l.LoadFile(ctx, u.Path)
	case "http", "https":
		return l.fetch(ctx, uri, u.Path)
	default:
		return nil, fmt.Errorf("unsupported URI scheme: %q (expected file, http, or https)", u.Scheme)
	}
}

// Load treats input as an http(s)/file URI when it has one of those
// schemes and as a local path otherwise.
func (l *Loader) Load(ctx context.Context, input string) ([]Page, error) {
	for _, prefix := range []string{"http://", "https://", "file://"} {
		if strings.HasPrefix(input, prefix) {
			return l.LoadURI(ctx, input)
		}
	}
	return l.LoadFile(ctx, input)
}

// SupportedFormats returns supported extensions, sorted.
func (l *Loader) SupportedFormats() []string {
	fmts := l.formats.SupportedFormats()
	sort.Strings(fmts)
	return fmts
}

// MaxFileSizeBytes reports the configured size limit.
func (l *Loader) MaxFileSizeBytes() int64 {
	return l.cfg.MaxFileSizeBytes
}

func (l *Loader) fetch(ctx context.Context, uri, urlPath string) ([]Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", uri, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, uri)
	}

	// Read one byte past the limit so oversize bodies are detected.
	body, err := io.ReadAll(io.LimitReader(resp.Body, l.cfg.MaxFileSizeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return l.Read(nameForResponse(resp.Header.Get("Content-Type"), urlPath), body)
}

// nameForResponse picks a synthetic file name whose extension routes the
// body to the right reader.
func nameForResponse(contentType, urlPath string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "application/pdf"):
		return "download.pdf"
	case strings.Contains(ct, "wordprocessingml"):
		return "download.docx"
	case strings.Contains(ct, "presentationml"):
		return "download.pptx"
	case strings.Contains(ct, "spreadsheetml"):
		return "download.xlsx"
	case strings.Contains(ct, "text/csv"):
		return "download.csv"
	case strings.Contains(ct, "text/plain"), strings.Contains(ct, "text/markdown"):
		return "download.txt"
	case strings.Contains(ct, "text/html"):
		return "download.html"
	}
	if ext := strings.ToLower(path.Ext(urlPath)); formats[ext] {
		return "download" + ext
	}
	return "download.html"
}
