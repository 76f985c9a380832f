package config

import (
	"fmt"
	"io/fs"
	"strconv"
)

// Settings is the effective tool configuration.
type Settings struct {
	Paths       Paths       `koanf:"paths" toml:"paths"`
	Render      Render      `koanf:"render" toml:"render"`
	Copy        Copy        `koanf:"copy" toml:"copy"`
	Permissions Permissions `koanf:"permissions" toml:"permissions"`
	Sitemap     Sitemap     `koanf:"sitemap" toml:"sitemap"`
	UI          UI          `koanf:"ui" toml:"ui"`
}

// Paths locates the parts of a project. All but Output are relative to the
// input directory.
type Paths struct {
	Config   string `koanf:"config" toml:"config"`
	Pages    string `koanf:"pages" toml:"pages"`
	Sources  string `koanf:"sources" toml:"sources"`
	Homepage string `koanf:"homepage" toml:"homepage"`
	Output   string `koanf:"output" toml:"output"`
}

// Render configures the template passes.
type Render struct {
	Ignore  []string `koanf:"ignore" toml:"ignore"`
	DateKey string   `koanf:"datekey" toml:"datekey"`
}

// Copy configures the static copy pass.
type Copy struct {
	Exclude  []string `koanf:"exclude" toml:"exclude"`
	Checksum bool     `koanf:"checksum" toml:"checksum"`
}

// Permissions holds octal modes for written files and created directories.
type Permissions struct {
	File string `koanf:"file" toml:"file"`
	Dir  string `koanf:"dir" toml:"dir"`
}

// Sitemap configures sitemap.xml generation.
type Sitemap struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	BaseURL string `koanf:"baseurl" toml:"baseurl"`
}

// UI configures output.
type UI struct {
	Format string `koanf:"format" toml:"format"`
}

// FileMode parses Permissions.File.
func (p Permissions) FileMode() (fs.FileMode, error) {
	return parseMode("permissions.file", p.File)
}

// DirMode parses Permissions.Dir.
func (p Permissions) DirMode() (fs.FileMode, error) {
	return parseMode("permissions.dir", p.Dir)
}

func parseMode(key, value string) (fs.FileMode, error) {
	mode, err := strconv.ParseUint(value, 8, 32)
	if err != nil || mode > 0777 {
		return 0, fmt.Errorf("%s: %q is not an octal permission", key, value)
	}
	return fs.FileMode(mode), nil
}

func (s *Settings) validate() error {
	if _, err := s.Permissions.FileMode(); err != nil {
		return err
	}
	if _, err := s.Permissions.DirMode(); err != nil {
		return err
	}
	if s.Paths.Config == "" {
		return fmt.Errorf("paths.config must not be empty")
	}
	if s.Render.DateKey == "" {
		return fmt.Errorf("render.datekey must not be empty")
	}
	if s.Sitemap.Enabled && s.Sitemap.BaseURL == "" {
		return fmt.Errorf("sitemap.baseurl is required when the sitemap is enabled")
	}
	return nil
}
