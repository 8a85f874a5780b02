package config

import "time"

// Config is the root of ~/.config/shelline/config.toml.
type Config struct {
	General       GeneralConfig               `toml:"general"`
	Abbreviations map[string]string           `toml:"abbreviations"`
	Colors        map[string]string           `toml:"colors"`
	PagerColors   map[string]string           `toml:"pager_colors"`
}

// GeneralConfig carries the timed settings and history location the
// core consumes through its external interfaces (§6).
type GeneralConfig struct {
	HistoryFile            string   `toml:"history_file"`
	AutosuggestionDebounce Duration `toml:"autosuggestion_debounce"`
	IdlenessRescanWindow   Duration `toml:"idleness_rescan_window"`
}

// DefaultConfig returns the default configuration: no abbreviations,
// no color overrides (the role table falls back to fish_color_*
// environment variables per §6), a 5-second idleness window matching
// §5's stated default.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			AutosuggestionDebounce: Duration{25 * time.Millisecond},
			IdlenessRescanWindow:   Duration{5 * time.Second},
		},
		Abbreviations: map[string]string{},
		Colors:        map[string]string{},
		PagerColors:   map[string]string{},
	}
}
