package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/dmitrijs2005/userreg/internal/filex"
)

// errCancelled is returned by console reads interrupted with Ctrl-C.
var errCancelled = errors.New("cancelled")

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// Console is the line-oriented terminal the REPL and the forms talk to.
type Console interface {
	// ReadLine shows prompt and returns the entered line without its line
	// terminator.
	ReadLine(prompt string) (string, error)
	// ReadPassword shows prompt and reads a line without echo.
	ReadPassword(prompt string) ([]byte, error)
	// AddHistory records a REPL command in the history.
	AddHistory(line string)
	Stdout() io.Writer
	Close() error
}

// NewConsole returns a readline console when both stdin and stdout are
// terminals, and a plain buffered console otherwise (pipes, scripts).
func NewConsole(historyFile string) (Console, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return newReadlineConsole(historyFile)
	}
	return NewStreamConsole(os.Stdin, os.Stdout), nil
}

type readlineConsole struct {
	rl *readline.Instance
}

func newReadlineConsole(historyFile string) (*readlineConsole, error) {
	if historyFile != "" {
		abs, err := filex.EnsureParentDir(historyFile)
		if err != nil {
			return nil, err
		}
		historyFile = abs
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 "> ",
		HistoryFile:            historyFile,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("init readline: %w", err)
	}
	return &readlineConsole{rl: rl}, nil
}

func (c *readlineConsole) ReadLine(prompt string) (string, error) {
	c.rl.SetPrompt(prompt)
	line, err := c.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", errCancelled
	}
	return line, err
}

func (c *readlineConsole) ReadPassword(prompt string) ([]byte, error) {
	pw, err := c.rl.ReadPassword(prompt)
	if errors.Is(err, readline.ErrInterrupt) {
		return nil, errCancelled
	}
	return pw, err
}

func (c *readlineConsole) AddHistory(line string) {
	_ = c.rl.SaveHistory(line)
}

func (c *readlineConsole) Stdout() io.Writer {
	return c.rl.Stdout()
}

func (c *readlineConsole) Close() error {
	return c.rl.Close()
}

// StreamConsole reads lines from any reader. Passwords are read without echo
// when the reader is a terminal.
type StreamConsole struct {
	reader *bufio.Reader
	in     io.Reader
	out    io.Writer
}

func NewStreamConsole(in io.Reader, out io.Writer) *StreamConsole {
	return &StreamConsole{reader: bufio.NewReader(in), in: in, out: out}
}

// ReadLine returns io.EOF only when nothing was read; a final line without
// a newline is returned as is.
func (c *StreamConsole) ReadLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(c.out, prompt); err != nil {
		return "", err
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *StreamConsole) ReadPassword(prompt string) ([]byte, error) {
	f, ok := c.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		line, err := c.ReadLine(prompt)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	if _, err := fmt.Fprint(c.out, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(f.Fd()))
	fmt.Fprintln(c.out)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

func (c *StreamConsole) AddHistory(string) {}

func (c *StreamConsole) Stdout() io.Writer {
	return c.out
}

func (c *StreamConsole) Close() error {
	return nil
}
