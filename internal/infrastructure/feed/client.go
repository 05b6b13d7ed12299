package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/seeuferweg-catalog/internal/config"
	"github.com/seeuferweg-catalog/internal/domain"
	"github.com/seeuferweg-catalog/internal/domain/repository"
	"go.uber.org/zap"
)

// maxFeedSize ограничивает размер одного документа фида
const maxFeedSize = 64 << 20

// ErrFeedNotConfigured - источник отсутствует в манифесте
var ErrFeedNotConfigured = errors.New("feed not configured")

type client struct {
	httpClient *http.Client
	baseURL    string
	dir        string
	sources    []domain.Source
	paths      map[domain.Source]string
	logger     *zap.Logger
}

// NewFeedClient создаёт клиент фидов. При заданном BaseURL документы загружаются по HTTP,
// иначе читаются из каталога Dir
func NewFeedClient(cfg *config.FeedsConfig, logger *zap.Logger) repository.FeedRepository {
	feeds := cfg.Sources
	if len(feeds) == 0 {
		feeds = config.DefaultFeedSources()
	}

	c := &client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		dir:     cfg.Dir,
		paths:   make(map[domain.Source]string, len(feeds)),
		logger:  logger,
	}
	for _, f := range feeds {
		c.sources = append(c.sources, f.Source)
		c.paths[f.Source] = f.Path
	}
	return c
}

// Sources возвращает источники из манифеста
func (c *client) Sources() []domain.Source {
	out := make([]domain.Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// Fetch загружает документ фида и проверяет, что это корректный JSON
func (c *client) Fetch(ctx context.Context, source domain.Source) (json.RawMessage, error) {
	path, ok := c.paths[source]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFeedNotConfigured, source)
	}

	var (
		data []byte
		err  error
	)
	if c.baseURL != "" {
		data, err = c.fetchHTTP(ctx, c.baseURL+"/"+path)
	} else {
		data, err = c.readFile(ctx, filepath.Join(c.dir, path))
	}
	if err != nil {
		return nil, err
	}

	if !json.Valid(data) {
		c.logger.Error("Feed is not valid JSON", zap.String("source", string(source)))
		return nil, fmt.Errorf("feed %s: invalid JSON document", source)
	}
	return json.RawMessage(data), nil
}

func (c *client) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	c.logger.Debug("Fetching feed", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("Feed server returned error",
			zap.String("url", url),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("feed server error: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}

func (c *client) readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.logger.Debug("Reading feed file", zap.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed file: %w", err)
	}
	return data, nil
}
