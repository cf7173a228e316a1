package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/arcade-cli/internal/app"
)

type Loader interface {
	Load(ctx context.Context) (app.Snapshot, error)
}

type LoadSuccessMsg struct {
	Snapshot app.Snapshot
	Duration time.Duration
	Source   string
}

type LoadErrorMsg struct {
	Snapshot app.Snapshot
	Err      error
	Duration time.Duration
	Source   string
}

// LoadSupersededMsg is delivered by a load that a newer one replaced.
type LoadSupersededMsg struct {
	Source string
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

type ClearStatusMsg struct {
	ID int
}

func LoadCmd(loader Loader, timeout time.Duration, source string) tea.Cmd {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()

		snap, err := loader.Load(ctx)
		if errors.Is(err, app.ErrLoadSuperseded) {
			return LoadSupersededMsg{Source: source}
		}
		if err != nil {
			return LoadErrorMsg{Snapshot: snap, Err: err, Duration: time.Since(start), Source: source}
		}
		return LoadSuccessMsg{Snapshot: snap, Duration: time.Since(start), Source: source}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened link in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, link copied to clipboard", Opened: false}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open link or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Link copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy link to clipboard")}
	}
}

func ClearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
