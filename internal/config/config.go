// Package config loads runtime settings for the coolreader CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/efermi/coolreader/internal/catalog"
)

type Config struct {
	// Root is the library directory scanned when no argument is given.
	Root string

	// Sort is the default sort order name (e.g. AUTHOR_TITLE).
	Sort string

	// Logging
	LogLevel  string
	LogFormat string

	// ArchiveExts lists the extensions expanded through the archive index.
	ArchiveExts []string

	// ScanDepth bounds recursive scans. Zero scans only the given directory.
	ScanDepth int

	// Checksums enables CRC32 fingerprints for plain files during scans.
	Checksums bool
}

func Load() Config {
	cfg := Config{
		Root:        envOr("COOLREADER_ROOT", defaultRoot()),
		Sort:        envOr("COOLREADER_SORT", catalog.DefaultSortOrder.String()),
		LogLevel:    envOr("COOLREADER_LOG_LEVEL", "warn"),
		LogFormat:   envOr("COOLREADER_LOG_FORMAT", "console"),
		ArchiveExts: envList("COOLREADER_ARCHIVE_EXTS", []string{".zip"}),
		ScanDepth:   envInt("COOLREADER_SCAN_DEPTH", 8),
		Checksums:   envBool("COOLREADER_CHECKSUMS", false),
	}

	if cfg.ScanDepth < 0 {
		cfg.ScanDepth = 0
	}
	if len(cfg.ArchiveExts) == 0 {
		cfg.ArchiveExts = []string{".zip"}
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("COOLREADER_ROOT is required")
	}
	if !filepath.IsAbs(c.Root) {
		return fmt.Errorf("library root must be absolute: %s", c.Root)
	}
	if strings.HasPrefix(c.Root, catalog.VirtualMarker) {
		return fmt.Errorf("library root must not start with %q: %s", catalog.VirtualMarker, c.Root)
	}
	if _, ok := catalog.ParseSortOrder(c.Sort); !ok {
		return fmt.Errorf("unknown sort order %q", c.Sort)
	}
	return nil
}

func defaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Books")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		out = append(out, part)
	}
	return out
}
