package repl

import (
	"os"

	"github.com/peterh/liner"
)

// Prompter reads one line of input. It returns io.EOF when input ends and
// liner.ErrPromptAborted when the user cancels the current entry.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// LinerPrompter is the terminal Prompter with line editing and history.
type LinerPrompter struct {
	state       *liner.State
	historyPath string
}

// NewLinerPrompter takes over the terminal. History is read from
// historyPath when it is set; a missing file is not an error.
func NewLinerPrompter(historyPath string) *LinerPrompter {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	ln.SetMultiLineMode(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	return &LinerPrompter{state: ln, historyPath: historyPath}
}

// Prompt implements Prompter.
func (p *LinerPrompter) Prompt(prompt string) (string, error) {
	return p.state.Prompt(prompt)
}

// AppendHistory implements Prompter.
func (p *LinerPrompter) AppendHistory(item string) {
	p.state.AppendHistory(item)
}

// Close persists the history (best effort) and restores the terminal.
func (p *LinerPrompter) Close() error {
	if p.historyPath != "" {
		if f, err := os.Create(p.historyPath); err == nil {
			_, _ = p.state.WriteHistory(f)
			_ = f.Close()
		}
	}
	return p.state.Close()
}
