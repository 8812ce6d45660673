package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// blockTerminator ends a multi-line answer.
const blockTerminator = "."

// Prompter reads operator answers line by line and writes prompts and
// reports to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Ask prints question and returns the trimmed answer.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskDefault is Ask that falls back to def on an empty answer.
func (p *Prompter) AskDefault(question, def string) (string, error) {
	answer, err := p.Ask(question)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm reports whether the operator answered exactly "yes" (any case).
// A closed input counts as no.
func (p *Prompter) Confirm(question string) bool {
	answer, err := p.Ask(question)
	if err != nil {
		return false
	}
	return strings.ToLower(answer) == "yes"
}

// AskBlock reads lines until one consisting of a single "." and returns them
// joined by newlines. End of input also ends the block.
func (p *Prompter) AskBlock(question string) (string, error) {
	fmt.Fprintln(p.out, question)
	fmt.Fprintf(p.out, "(finish with a line containing only %q)\n", blockTerminator)

	var lines []string
	for {
		line, err := p.readLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == blockTerminator {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// readLine returns the next line without its line ending. A final line
// without a newline is returned before io.EOF is reported.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
