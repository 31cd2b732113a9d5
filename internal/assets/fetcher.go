// Package assets fetches the form template and fonts from network
// storage. The four files have no ordering dependency between them, so
// they are fetched concurrently, but a bundle is only returned once every
// fetch has completed: fonts are referenced during every field write.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/reparper/reparper/internal/config"
	"github.com/reparper/reparper/pkg/storage"
)

// Bundle holds every asset one fill run needs.
type Bundle struct {
	Template    []byte
	RegularFont []byte
	BoldFont    []byte
	TitleFont   []byte
}

// Source provides asset bundles per grade. The report-card service
// depends on this interface so tests can substitute fixed bytes.
type Source interface {
	FetchBundle(ctx context.Context, grade string) (*Bundle, error)
}

// Fetcher fetches assets over HTTP or S3 and caches them by URL; the
// template and fonts are immutable for the lifetime of the process.
type Fetcher struct {
	cfg    config.AssetsConfig
	http   *http.Client
	s3     storage.S3Client
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string][]byte
}

// NewFetcher creates a fetcher. The S3 client may be nil when no asset
// uses an s3:// URL.
func NewFetcher(cfg config.AssetsConfig, s3 storage.S3Client, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.FetchTimeout},
		s3:     s3,
		logger: logger,
		cache:  make(map[string][]byte),
	}
}

// FetchBundle fetches the grade's template and all three fonts.
func (f *Fetcher) FetchBundle(ctx context.Context, grade string) (*Bundle, error) {
	templateURL, ok := f.cfg.TemplateURLs[grade]
	if !ok || templateURL == "" {
		return nil, fmt.Errorf("no form template configured for grade %s", grade)
	}

	bundle := &Bundle{}
	g, ctx := errgroup.WithContext(ctx)

	fetchInto := func(url string, dst *[]byte) {
		g.Go(func() error {
			data, err := f.fetch(ctx, url)
			if err != nil {
				return err
			}
			*dst = data
			return nil
		})
	}

	fetchInto(templateURL, &bundle.Template)
	fetchInto(f.cfg.RegularFontURL, &bundle.RegularFont)
	fetchInto(f.cfg.BoldFontURL, &bundle.BoldFont)
	fetchInto(f.cfg.TitleFontURL, &bundle.TitleFont)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bundle, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	cached, ok := f.cache[url]
	f.mu.Unlock()
	if ok {
		return cached, nil
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(url, "s3://") {
		data, err = f.fetchS3(ctx, url)
	} else {
		data, err = f.fetchHTTP(ctx, url)
	}
	if err != nil {
		return nil, err
	}

	f.logger.Debug("fetched asset", zap.String("url", url), zap.Int("bytes", len(data)))

	f.mu.Lock()
	f.cache[url] = data
	f.mu.Unlock()
	return data, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build asset request for %s: %w", url, err)
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset %s returned status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", url, err)
	}
	return data, nil
}

func (f *Fetcher) fetchS3(ctx context.Context, url string) ([]byte, error) {
	if f.s3 == nil {
		return nil, fmt.Errorf("asset %s requires an S3 client", url)
	}

	trimmed := strings.TrimPrefix(url, "s3://")
	bucket, key, ok := strings.Cut(trimmed, "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("invalid s3 asset URL %q", url)
	}

	body, err := f.s3.Download(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", url, err)
	}
	return data, nil
}
