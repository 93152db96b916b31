package editor

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kobzarvs/me/internal/logger"
)

// browserEntry is one directory listing line.
type browserEntry struct {
	name  string
	isDir bool
}

// browserState is the BROWSER mode's local state.
type browserState struct {
	entries    []browserEntry
	selected   int
	offset     int
	dir        string
	showHidden bool
}

// StartBrowser enters BROWSER mode rooted at the current directory.
func (e *Editor) StartBrowser() {
	e.setMode(ModeBrowser)
	e.browser.showHidden = false
	e.loadDirectory(".")
	e.setStickyStatus("File Browser: Enter to open, H to toggle hidden, ESC to cancel")
}

// loadDirectory fills the entry list for dir: directories first, each
// group sorted case-insensitively, hidden entries skipped unless toggled
// on, and a synthetic ".." at the top when dir is not the root.
func (e *Editor) loadDirectory(dir string) {
	b := &e.browser
	entries, err := os.ReadDir(dir)
	if err != nil {
		e.setStatus("Cannot open directory: %s", err)
		e.setMode(ModeNormal)
		return
	}
	b.dir = dir
	b.entries = b.entries[:0]

	list := make([]browserEntry, 0, len(entries))
	for _, de := range entries {
		name := de.Name()
		if name == "." || name == ".." {
			continue
		}
		if !b.showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		// Resolve symlinks and oddities through Stat; skip what is
		// neither a directory nor a regular file.
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		switch {
		case info.IsDir():
			list = append(list, browserEntry{name: name, isDir: true})
		case info.Mode().IsRegular():
			list = append(list, browserEntry{name: name})
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].isDir != list[j].isDir {
			return list[i].isDir
		}
		return strings.ToLower(list[i].name) < strings.ToLower(list[j].name)
	})

	if abs, err := filepath.Abs(dir); err != nil || abs != "/" {
		b.entries = append(b.entries, browserEntry{name: "..", isDir: true})
	}
	b.entries = append(b.entries, list...)
	b.selected = 0
	b.offset = 0
}

// openSelected descends into a directory or opens the selected file,
// prompting to save a modified buffer first.
func (e *Editor) openSelected() {
	b := &e.browser
	if b.selected >= len(b.entries) {
		return
	}
	entry := b.entries[b.selected]

	if entry.isDir {
		var next string
		if entry.name == ".." {
			next = filepath.Dir(b.dir)
		} else {
			next = filepath.Join(b.dir, entry.name)
		}
		e.loadDirectory(next)
		return
	}

	path := filepath.Join(b.dir, entry.name)
	if e.gb.Modified() {
		e.startConfirm(confirmOpen,
			"Current file has been modified. Save before opening new file?", path)
		return
	}
	e.openFromBrowser(path)
}

// openFromBrowser leaves BROWSER mode and loads path.
func (e *Editor) openFromBrowser(path string) {
	if err := e.OpenFile(path); err != nil {
		logger.Warn("browser open failed", "path", path, "err", err)
		e.setMode(ModeNormal)
		e.setStatus("Error: %s", err)
		return
	}
	e.setMode(ModeNormal)
	e.setStatus("Opened: %s", path)
	e.fullRedraw = true
}

// fileTypeTag returns the browser list tag for an entry.
func fileTypeTag(entry browserEntry) string {
	if entry.isDir {
		return "[DIR]  "
	}
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(entry.name)), ".") {
	case "c", "h", "cpp", "cxx", "hpp", "cc", "sh", "py", "rb", "js",
		"rs", "go", "java", "php", "pl", "lua", "vim", "asm", "s":
		return "[SRC]  "
	}
	return "[FILE] "
}

// isSourceFile reports whether the entry gets the source-file color.
func isSourceFile(entry browserEntry) bool {
	return !entry.isDir && fileTypeTag(entry) == "[SRC]  "
}
