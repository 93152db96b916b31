// Package app owns the runtime: screen lifecycle, the event loop and the
// wiring between the editor core and its collaborators.
package app

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/me/internal/config"
	"github.com/kobzarvs/me/internal/editor"
	"github.com/kobzarvs/me/internal/gitinfo"
	"github.com/kobzarvs/me/internal/logger"
	"github.com/kobzarvs/me/internal/session"
)

// tickInterval paces the idle wakeups of the event loop; each tick checks
// whether the status bar clock needs a repaint.
const tickInterval = 100 * time.Millisecond

// App is the top-level runtime.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

// Run starts the editor and blocks until quit. The screen is restored on
// every exit path, including panics, before the error propagates.
func (a *App) Run() error {
	runtime.LockOSThread()

	if err := logger.Init(os.Getenv("ME_DEBUG") != ""); err == nil {
		defer logger.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	langs, err := config.LoadLanguages()
	if err != nil {
		return err
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	ed := editor.New(cfg, langs)
	defer ed.Shutdown()

	if sm, err := session.NewManager(); err == nil {
		ed.SetSessionManager(sm)
	} else {
		logger.Warn("session manager unavailable", "err", err)
	}

	gitPath := ""
	if len(a.args) > 0 {
		path := a.args[0]
		if err := ed.OpenFile(path); err != nil {
			return err
		}
		gitPath = path
	} else if cwd, err := os.Getwd(); err == nil {
		gitPath = cwd
	}
	if gitPath != "" {
		ed.SetGitBranch(gitinfo.Branch(gitPath))
	}

	// Idle ticks drive the status bar clock; SIGCONT after a shell
	// suspend forces a full resync of the terminal state.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = s.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()
	contCh := make(chan os.Signal, 1)
	signal.Notify(contCh, syscall.SIGCONT)
	defer signal.Stop(contCh)
	go func() {
		for {
			select {
			case <-stop:
				return
			case <-contCh:
				_ = s.PostEvent(tcell.NewEventInterrupt(syscall.SIGCONT))
			}
		}
	}()

	ed.SetStatus("me | Ctrl-? Help")
	ed.Render(s)

	lastSecond := time.Now().Second()
	lastGitCheck := time.Now()
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ed.HandleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventInterrupt:
			if ev.Data() == syscall.SIGCONT {
				s.Sync()
				break
			}
			// Idle tick: repaint only when the clock second rolled over.
			if now := time.Now().Second(); now != lastSecond {
				lastSecond = now
				break
			}
			continue
		}
		if gitPath != "" && time.Since(lastGitCheck) > 2*time.Second {
			lastGitCheck = time.Now()
			ed.SetGitBranch(gitinfo.Branch(gitPath))
		}
		ed.Render(s)
	}
}
