package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	configFileName = "quota.toml"
	tokenFileName  = "quota_token"
	cacheFileName  = "quota_cache.json"
)

// Paths locates the files the quota segment reads and writes. Everything
// lives under one base directory so tests can point it anywhere.
type Paths struct {
	Dir string
}

// DefaultPaths resolves the base directory: $CLAUDE_CONFIG_DIR/ccline when
// the variable is set, otherwise ~/.claude/ccline.
func DefaultPaths() Paths {
	if claudeConfigDir := os.Getenv("CLAUDE_CONFIG_DIR"); claudeConfigDir != "" {
		return Paths{Dir: filepath.Join(claudeConfigDir, "ccline")}
	}

	home := xdg.Home
	if home == "" {
		home = "."
	}
	return Paths{Dir: filepath.Join(home, ".claude", "ccline")}
}

func (p Paths) ConfigFile() string {
	return filepath.Join(p.Dir, configFileName)
}

func (p Paths) TokenFile() string {
	return filepath.Join(p.Dir, tokenFileName)
}

func (p Paths) CacheFile() string {
	return filepath.Join(p.Dir, cacheFileName)
}
