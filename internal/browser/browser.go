package browser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	pkgbrowser "github.com/pkg/browser"
)

// Opener hands a URL to something that can display it.
type Opener interface {
	Open(url string) error
}

// System opens URLs in the user's default browser.
type System struct {
	// Stdout and Stderr receive the launcher's output; both default to discarding it.
	Stdout io.Writer
	Stderr io.Writer
}

// Open launches the default browser with url, unchanged.
func (s System) Open(url string) error {
	if strings.TrimSpace(url) == "" {
		return errors.New("article url is empty")
	}

	pkgbrowser.Stdout = orDiscard(s.Stdout)
	pkgbrowser.Stderr = orDiscard(s.Stderr)

	if err := pkgbrowser.OpenURL(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// Func adapts a function to Opener.
type Func func(url string) error

func (f Func) Open(url string) error { return f(url) }
