// Package config holds the server settings. The defaults reproduce the
// zero-argument behaviour: serve the working directory on port 8000.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"simples-server/utils"
)

const (
	DefaultRoot       = "."
	DefaultEntryPoint = "index-simples.html"
	DefaultHTTPAddr   = ":8000"
)

// Config is the complete runtime configuration.
type Config struct {
	// Root is the served directory.
	Root string `toml:"root" yaml:"root"`
	// EntryPoint is the page suggested in the startup banner.
	EntryPoint string `toml:"entry_point" yaml:"entry_point"`
	// MIMETypes adds or replaces extension mappings, e.g. ".wasm".
	MIMETypes map[string]string `toml:"mime_types" yaml:"mime_types"`

	HTTP HTTPConfig `toml:"http" yaml:"http"`
	TFTP TFTPConfig `toml:"tftp" yaml:"tftp"`
	NFS  NFSConfig  `toml:"nfs" yaml:"nfs"`
}

type HTTPConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// TFTPConfig enables the read-only TFTP mirror when Addr is set.
type TFTPConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// NFSConfig enables the read-only NFS export when Addr is set.
type NFSConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

func Default() Config {
	return Config{
		Root:       DefaultRoot,
		EntryPoint: DefaultEntryPoint,
		HTTP:       HTTPConfig{Addr: DefaultHTTPAddr},
	}
}

// Load reads a TOML or YAML file over Default. The format is chosen by
// file extension and unknown keys are rejected.
func Load(file string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(file)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", file, err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			keys := make([]string, 0, len(undec))
			for _, k := range undec {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return cfg, fmt.Errorf("parse %s: unknown keys %s", file, strings.Join(keys, ", "))
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("parse %s: %w", file, err)
		}
	default:
		return cfg, fmt.Errorf("config %s: unsupported format %q (want .toml, .yaml or .yml)", file, ext)
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail late at startup.
func (c Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root is empty")
	}
	if clean := path.Clean(c.EntryPoint); c.EntryPoint == "" || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("entry_point %q must be a relative path inside the root", c.EntryPoint)
	}
	if _, err := utils.Port(c.HTTP.Addr); err != nil {
		return fmt.Errorf("http.addr: %w", err)
	}
	if c.TFTP.Addr != "" {
		if _, err := utils.Port(c.TFTP.Addr); err != nil {
			return fmt.Errorf("tftp.addr: %w", err)
		}
	}
	if c.NFS.Addr != "" {
		if _, err := utils.Port(c.NFS.Addr); err != nil {
			return fmt.Errorf("nfs.addr: %w", err)
		}
	}
	for ext := range c.MIMETypes {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("mime_types: extension %q must start with a dot", ext)
		}
	}
	return nil
}
