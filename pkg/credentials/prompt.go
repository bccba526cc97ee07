package credentials

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Prompter reads a secret from the operator.
type Prompter interface {
	ReadPassphrase(prompt string) (string, error)
}

// TerminalPrompter reads from In with echo suppressed when In is a
// terminal, and reads a plain line otherwise.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

// NewTerminalPrompter prompts on stderr and reads from stdin.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

func (p *TerminalPrompter) ReadPassphrase(prompt string) (string, error) {
	fmt.Fprint(p.Out, prompt)

	if isatty.IsTerminal(p.In.Fd()) {
		secret, err := term.ReadPassword(int(p.In.Fd()))
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
