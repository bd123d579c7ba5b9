package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service loads YAML or JSON documents from any afs-supported location
// (file://, mem://, embed://, s3://, gs:// ...), expanding ${env.KEY}
// expressions before decoding.
type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option
}

// Load decodes the document at URL into target. Relative URLs are resolved
// against the base URL.
func (s *Service) Load(ctx context.Context, URL string, target interface{}) error {
	URL = s.resolve(URL)
	data, err := s.fs.DownloadWithURL(ctx, URL, s.options...)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", URL, err)
	}
	if err = Decode(URL, []byte(expandEnvExpr(string(data))), target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", URL, err)
	}
	return nil
}

// Exists reports whether the document at URL exists.
func (s *Service) Exists(ctx context.Context, URL string) (bool, error) {
	return s.fs.Exists(ctx, s.resolve(URL), s.options...)
}

func (s *Service) resolve(URL string) string {
	if s.baseURL == "" || strings.Contains(URL, "://") || strings.HasPrefix(URL, "/") {
		return URL
	}
	return url.Join(s.baseURL, URL)
}

// Decode unmarshals data picking the codec from the URL extension; anything
// other than .json is treated as YAML.
func Decode(URL string, data []byte, target interface{}) error {
	switch strings.ToLower(path.Ext(URL)) {
	case ".json":
		return json.Unmarshal(data, target)
	default:
		return yaml.Unmarshal(data, target)
	}
}

// New creates a meta service.
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	return &Service{fs: fs, baseURL: baseURL, options: options}
}
