package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
content:
  root: "./site/content"
  strict: true
search:
  base_url: "https://example.com"
  timeout: 3s
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	wantRoot := filepath.Join(dir, "site", "content")
	if cfg.Content.Root != wantRoot {
		t.Errorf("content root = %s, want %s", cfg.Content.Root, wantRoot)
	}
	if !cfg.Content.Strict {
		t.Error("strict should be true when set in config")
	}
	if cfg.Search.Timeout != 3*time.Second {
		t.Errorf("search timeout = %v, want 3s", cfg.Search.Timeout)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_invalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_customCollections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
content:
  collections:
    - name: blog
      dir: posts
    - name: docs
      extensions: [".md"]
      recursive: true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	blog, ok := cfg.Content.Collection("blog")
	if !ok {
		t.Fatal("blog collection missing")
	}
	if blog.Dir != "posts" || len(blog.Extensions) != 1 || blog.Extensions[0] != ".mdx" {
		t.Errorf("blog collection: %+v", blog)
	}
	docs, _ := cfg.Content.Collection("docs")
	if docs.Dir != "docs" || !docs.Recursive {
		t.Errorf("docs collection: %+v", docs)
	}
	if _, ok := cfg.Content.Collection("releases"); ok {
		t.Error("releases should not be configured when collections are given explicitly")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Reading.WordsPerMinute != 200 || cfg.Reading.CharsPerMinute != 500 {
		t.Errorf("reading rates: got %+v", cfg.Reading)
	}
	if cfg.Excerpt.MaxLength != 160 {
		t.Errorf("excerpt max length: got %d", cfg.Excerpt.MaxLength)
	}
	if cfg.Related.Limit != 3 || cfg.Related.CategoryWeightOrDefault() != 10 || cfg.Related.TagWeightOrDefault() != 5 {
		t.Errorf("related defaults: got %+v", cfg.Related)
	}
	if len(cfg.Content.Collections) != 3 {
		t.Fatalf("default collections: got %d", len(cfg.Content.Collections))
	}
	docs, _ := cfg.Content.Collection("docs")
	if !docs.Recursive || len(docs.Extensions) != 2 {
		t.Errorf("docs collection defaults: %+v", docs)
	}
	if cfg.Watch.Debounce != 400*time.Millisecond {
		t.Errorf("watch debounce: got %v", cfg.Watch.Debounce)
	}
}

func TestLoad_zeroWeightIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("related:\n  category_weight: 0\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Related.CategoryWeightOrDefault(); got != 0 {
		t.Errorf("category weight = %v, want 0 (disabled)", got)
	}
	if got := cfg.Related.TagWeightOrDefault(); got != 5 {
		t.Errorf("tag weight = %v, want default 5", got)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")
	cfg := &Config{
		Server:  ServerConfig{Host: "localhost", Port: 9090},
		Content: ContentConfig{Root: "/srv/content"},
		Search:  SearchConfig{Timeout: 2 * time.Second},
	}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("loaded port: got %d", loaded.Server.Port)
	}
	if loaded.Content.Root != "/srv/content" {
		t.Errorf("loaded root: got %s", loaded.Content.Root)
	}
	if loaded.Search.Timeout != 2*time.Second {
		t.Errorf("loaded timeout: got %v", loaded.Search.Timeout)
	}
}

func TestApplyOverrides_env(t *testing.T) {
	t.Setenv("CONTENTKIT_SERVER_PORT", "9100")
	t.Setenv("CONTENTKIT_CONTENT_STRICT", "true")
	t.Setenv("CONTENTKIT_SEARCH_BASE_URL", "https://search.example.com")

	cfg := &Config{}
	ApplyDefaults(cfg)
	ApplyOverrides(cfg, NewViper())

	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, want 9100", cfg.Server.Port)
	}
	if !cfg.Content.Strict {
		t.Error("strict should be overridden from env")
	}
	if cfg.Search.BaseURL != "https://search.example.com" {
		t.Errorf("base url = %s", cfg.Search.BaseURL)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("host should keep its default, got %s", cfg.Server.Host)
	}
}

func TestApplyOverrides_contentRootRelativeToWorkingDir(t *testing.T) {
	t.Setenv("CONTENTKIT_CONTENT_ROOT", "site")
	cfg := &Config{}
	ApplyDefaults(cfg)
	ApplyOverrides(cfg, NewViper())
	wd, _ := os.Getwd()
	if want := filepath.Join(wd, "site"); cfg.Content.Root != want {
		t.Errorf("content root = %s, want %s", cfg.Content.Root, want)
	}
}
