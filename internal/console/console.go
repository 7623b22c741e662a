package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"repo-event-relay/pkg/log"
)

const (
	Banner = "🤖 Assistant ready"
	Prompt = "You: "
	Reply  = "Agent: %s\n"
)

var exitWords = map[string]struct{}{"exit": {}, "quit": {}}

// Asker answers one free-form question.
type Asker interface {
	Ask(ctx context.Context, query string) (string, error)
}

type Console struct {
	asker Asker
	l     log.Logger
}

func New(asker Asker, l log.Logger) *Console {
	return &Console{asker: asker, l: l}
}

// Run reads one line at a time from in and writes each answer to out. It returns on
// exit/quit, EOF, or when ctx is cancelled before the next line is read.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, Banner)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(out, Prompt)

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(out)
			select {
			case err := <-readErr:
				return err
			default:
				return nil
			}
		}

		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}
		if _, quit := exitWords[strings.ToLower(query)]; quit {
			return nil
		}

		answer, err := c.asker.Ask(ctx, query)
		if err != nil {
			c.l.Warnf(ctx, "console.Run: %v", err)
			answer = fmt.Sprintf("❌ %v", err)
		}
		fmt.Fprintf(out, Reply, answer)
	}
}
