package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/seeuferweg-catalog/internal/domain"
)

// FeedSource - один фид: источник и путь относительно BaseURL или Dir
type FeedSource struct {
	Source domain.Source `yaml:"source"`
	Path   string        `yaml:"path"`
}

// FeedManifest - YAML-описание набора фидов
type FeedManifest struct {
	BaseURL string       `yaml:"base_url"`
	Feeds   []FeedSource `yaml:"feeds"`
}

// DefaultFeedSources - три региональных фида с именами файлов по умолчанию
func DefaultFeedSources() []FeedSource {
	sources := make([]FeedSource, 0, len(domain.SourceOrder))
	for _, s := range domain.SourceOrder {
		sources = append(sources, FeedSource{Source: s, Path: string(s) + ".json"})
	}
	return sources
}

// LoadFeedManifest читает и проверяет манифест фидов
func LoadFeedManifest(path string) (*FeedManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed manifest: %w", err)
	}
	return ParseFeedManifest(data)
}

// ParseFeedManifest разбирает YAML манифеста
func ParseFeedManifest(data []byte) (*FeedManifest, error) {
	var manifest FeedManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse feed manifest: %w", err)
	}

	seen := make(map[domain.Source]bool, len(manifest.Feeds))
	for i, feed := range manifest.Feeds {
		if !feed.Source.IsValid() {
			return nil, fmt.Errorf("feed manifest entry %d: unknown source %q", i, feed.Source)
		}
		if seen[feed.Source] {
			return nil, fmt.Errorf("feed manifest entry %d: duplicate source %q", i, feed.Source)
		}
		seen[feed.Source] = true
		if feed.Path == "" {
			manifest.Feeds[i].Path = string(feed.Source) + ".json"
		}
	}
	return &manifest, nil
}
