package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Language describes one syntax. Keyword markers follow the descriptor
// convention: a trailing "|" tags a type keyword, a leading "#" a
// preprocessor directive. FileTypes entries starting with "." match as a
// path suffix; anything else matches as a substring of the file name.
type Language struct {
	Name             string   `toml:"name"`
	FileTypes        []string `toml:"file-types"`
	Keywords         []string `toml:"keywords"`
	SLCommentStart   string   `toml:"sl-comment-start"`
	MLCommentStart   string   `toml:"ml-comment-start"`
	MLCommentEnd     string   `toml:"ml-comment-end"`
	HighlightNumbers bool     `toml:"highlight-numbers"`
	HighlightStrings bool     `toml:"highlight-strings"`
}

type Languages struct {
	Languages []Language `toml:"language"`
}

// Builtin returns the descriptors compiled into the editor.
func Builtin() Languages {
	return Languages{Languages: []Language{
		{
			Name:      "c",
			FileTypes: []string{".c", ".cc", ".cxx", ".cpp", ".h"},
			Keywords: []string{
				"switch", "if", "while", "for", "break", "continue",
				"return", "else", "struct", "union", "typedef", "static",
				"enum", "class", "case", "volatile", "register", "sizeof",
				"goto", "const", "auto",
				"#if", "#endif", "#error", "#ifdef", "#ifndef", "#elif",
				"#define", "#undef", "#include",
				"int|", "long|", "double|", "float|", "char|", "unsigned|",
				"signed|", "void|", "bool|",
			},
			SLCommentStart:   "//",
			MLCommentStart:   "/*",
			MLCommentEnd:     "*/",
			HighlightNumbers: true,
			HighlightStrings: true,
		},
	}}
}

// Match returns the first descriptor whose file type matches path, built-in
// descriptors first, then user-defined ones.
func (l Languages) Match(path string) *Language {
	if path == "" {
		return nil
	}
	base := filepath.Base(path)
	for i := range l.Languages {
		lang := &l.Languages[i]
		for _, ft := range lang.FileTypes {
			if strings.HasPrefix(ft, ".") {
				if strings.HasSuffix(base, ft) {
					return lang
				}
			} else if strings.Contains(base, ft) {
				return lang
			}
		}
	}
	return nil
}

// LoadLanguages returns the built-in descriptors plus any defined in
// languages.toml under the config directory.
func LoadLanguages() (Languages, error) {
	langs := Builtin()
	path, err := LanguagesPath()
	if err != nil {
		return langs, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return langs, nil
		}
		return langs, err
	}

	var user Languages
	if _, err := toml.Decode(string(data), &user); err != nil {
		return langs, err
	}
	langs.Languages = append(langs.Languages, user.Languages...)
	return langs, nil
}

func LanguagesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "languages.toml"), nil
}
