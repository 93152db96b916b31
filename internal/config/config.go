package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	LineNumbers     bool   `toml:"line-numbers"`
	Clock           bool   `toml:"clock"`
	GitBranchSymbol string `toml:"git-branch-symbol"`
}

// Theme holds color names or #RRGGBB values. The highlight defaults
// reproduce the classic 16-color palette of the terminal: bright white
// text, yellow search matches, cyan comments, bright yellow/green
// keywords, red literals.
type Theme struct {
	Foreground            string `toml:"foreground"`
	Background            string `toml:"background"`
	StatuslineForeground  string `toml:"statusline-foreground"`
	StatuslineBackground  string `toml:"statusline-background"`
	MessageForeground     string `toml:"message-foreground"`
	MessageBackground     string `toml:"message-background"`
	LineNumberForeground  string `toml:"line-number-foreground"`
	SyntaxComment         string `toml:"syntax-comment"`
	SyntaxKeyword         string `toml:"syntax-keyword"`
	SyntaxType            string `toml:"syntax-type"`
	SyntaxPreproc         string `toml:"syntax-preproc"`
	SyntaxString          string `toml:"syntax-string"`
	SyntaxNumber          string `toml:"syntax-number"`
	SearchMatchBackground string `toml:"search-background"`
	BrowserDirForeground  string `toml:"browser-dir-foreground"`
	BrowserSrcForeground  string `toml:"browser-src-foreground"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			LineNumbers:     false,
			Clock:           true,
			GitBranchSymbol: "git:",
		},
		Theme: Theme{
			Foreground:            "#FFFFFF", // SGR 97
			Background:            "default",
			StatuslineForeground:  "#FFFFFF",
			StatuslineBackground:  "#585858", // SGR 100
			MessageForeground:     "#FFFF5F", // SGR 93
			MessageBackground:     "#0000AF", // SGR 44
			LineNumberForeground:  "#585858", // SGR 90
			SyntaxComment:         "#00AFAF", // SGR 36
			SyntaxKeyword:         "#FFFF5F", // SGR 93
			SyntaxType:            "#5FFF5F", // SGR 92
			SyntaxPreproc:         "#00AFAF", // SGR 36
			SyntaxString:          "#FF5F5F", // SGR 91
			SyntaxNumber:          "#AF0000", // SGR 31
			SearchMatchBackground: "#AFAF00", // SGR 43
			BrowserDirForeground:  "#005FFF", // SGR 34
			BrowserSrcForeground:  "#00AF00", // SGR 32
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	// Decode over the defaults so absent keys keep their values.
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("ME_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "me"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "me"), nil
}
