package ui

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/manicakes/progearsdk/internal/hw"
)

// Config contains window/input/audio related settings for the desktop shell.
type Config struct {
	Title   string `yaml:"title"`
	Scale   int    `yaml:"scale"` // integer upscaling factor
	Mute    bool   `yaml:"mute"`
	ShowHUD bool   `yaml:"show_hud"`

	// Cabinet identity reported to the program.
	MVS    bool `yaml:"mvs"`
	Region int  `yaml:"region"` // 0 Japan, 1 USA, 2 Europe

	// Memory card inserted at boot. Zero means no card.
	CardSize     int  `yaml:"card_size"`
	CardReadOnly bool `yaml:"card_read_only"`
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "progear"
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
	if c.Region < hw.RegionJapan || c.Region > hw.RegionEurope {
		c.Region = hw.RegionUSA
	}
	if c.CardSize < 0 {
		c.CardSize = 0
	}
	if c.CardSize > hw.MemcardMax {
		c.CardSize = hw.MemcardMax
	}
}

// LoadConfig reads a YAML config file and applies defaults on top.
// An empty path yields a default config.
func LoadConfig(path string) (Config, error) {
	var c Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse config: %w", err)
		}
	}
	c.Defaults()
	return c, nil
}
