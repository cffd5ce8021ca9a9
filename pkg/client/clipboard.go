package client

import (
	"github.com/atotto/clipboard"
	"github.com/pkg/errors"

	"github.com/integrail/namegen-client/pkg/util"
)

const copyPromptTitle = "Copy the names:"

// Clipboard is the system clipboard.
type Clipboard interface {
	Available() bool
	WriteAll(text string) error
}

// Prompter shows text for manual copying when no clipboard is available.
type Prompter interface {
	Prompt(title, text string)
}

type PrompterFunc func(title, text string)

func (f PrompterFunc) Prompt(title, text string) { f(title, text) }

// SystemClipboard uses xclip/xsel/wl-copy, pbcopy or the Windows API, whichever the platform has.
type SystemClipboard struct{}

func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

var _ Clipboard = SystemClipboard{}

// CopyAll writes names as a numbered list to cb, or hands the same text to prompter
// when cb is unavailable.
func CopyAll(cb Clipboard, prompter Prompter, names []string) error {
	text := util.NumberedList(names)
	if cb != nil && cb.Available() {
		if err := cb.WriteAll(text); err != nil {
			return &ClipboardError{Cause: err}
		}
		return nil
	}
	if prompter == nil {
		return &ClipboardError{Cause: errors.New("no clipboard and no prompt available")}
	}
	prompter.Prompt(copyPromptTitle, text)
	return nil
}
