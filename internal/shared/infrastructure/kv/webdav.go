package kv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/emersion/go-webdav"
)

// WebDAVStorage keeps one resource per key in a WebDAV collection.
type WebDAVStorage struct {
	client *webdav.Client
	root   string
}

// WebDAVConfig holds the collection endpoint and credentials.
type WebDAVConfig struct {
	URL      string
	Username string
	Password string
	Client   *http.Client
}

// NewWebDAVStorage creates a client for the collection at cfg.URL.
func NewWebDAVStorage(cfg WebDAVConfig) (*WebDAVStorage, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("webdav url is required")
	}

	httpClient := cfg.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var c webdav.HTTPClient = httpClient
	if cfg.Username != "" {
		c = webdav.HTTPClientWithBasicAuth(httpClient, cfg.Username, cfg.Password)
	}

	client, err := webdav.NewClient(c, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create webdav client: %w", err)
	}
	return &WebDAVStorage{client: client, root: "/"}, nil
}

func (s *WebDAVStorage) resource(key string) string {
	return path.Join(s.root, url.PathEscape(key)+".json")
}

func (s *WebDAVStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	rc, err := s.client.Open(ctx, s.resource(key))
	if err != nil {
		if isWebDAVNotFound(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, ValueMaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if len(data) > ValueMaxSize {
		return nil, ErrValueTooBig
	}
	return data, nil
}

func (s *WebDAVStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := validateEntry(key, value); err != nil {
		return err
	}

	wc, err := s.client.Create(ctx, s.resource(key))
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	if _, err := wc.Write(value); err != nil {
		_ = wc.Close()
		return fmt.Errorf("put %s: %w", key, err)
	}
	// the upload completes on Close
	if err := wc.Close(); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *WebDAVStorage) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := s.client.RemoveAll(ctx, s.resource(key)); err != nil && !isWebDAVNotFound(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *WebDAVStorage) Close() error { return nil }

// go-webdav reports HTTP failures as "<code> <status text>".
func isWebDAVNotFound(err error) bool {
	return strings.Contains(err.Error(), "404")
}
