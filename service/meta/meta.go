// Package meta loads configuration documents from any afs supported location.
package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service reads and decodes documents relative to a base URL
type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option
}

// New creates a meta service; an empty baseURL means locations are absolute
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	return &Service{fs: fs, baseURL: baseURL, options: options}
}

// URL resolves location against the base URL
func (s *Service) URL(location string) string {
	if s.baseURL != "" && url.IsRelative(location) {
		return url.Join(s.baseURL, location)
	}
	return location
}

// Load downloads the document, expands ${env.KEY} expressions and decodes it
// into target by extension: .yaml/.yml, .toml or .json.
func (s *Service) Load(ctx context.Context, location string, target interface{}) error {
	URL := s.URL(location)
	data, err := s.fs.DownloadWithURL(ctx, URL, s.options...)
	if err != nil {
		return fmt.Errorf("failed to download %v: %w", URL, err)
	}
	text := expandEnv(string(data))
	switch ext := strings.ToLower(path.Ext(URL)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal([]byte(text), target)
	case ".toml":
		err = toml.Unmarshal([]byte(text), target)
	case ".json":
		err = json.Unmarshal([]byte(text), target)
	default:
		return fmt.Errorf("unsupported format %q: %v", ext, URL)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %v: %w", URL, err)
	}
	return nil
}
