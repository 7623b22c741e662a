package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"repo-event-relay/pkg/log"
)

type stubAsker struct {
	queries []string
	err     error
}

func (s *stubAsker) Ask(ctx context.Context, query string) (string, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return "", s.err
	}
	return "echo " + query, nil
}

func TestRun(t *testing.T) {
	t.Run("answers until exit", func(t *testing.T) {
		asker := &stubAsker{}
		var out bytes.Buffer
		in := strings.NewReader("show recent events\n\nQUIT\nnever asked\n")

		if err := New(asker, log.NewNop()).Run(context.Background(), in, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(asker.queries) != 1 || asker.queries[0] != "show recent events" {
			t.Errorf("unexpected queries %v", asker.queries)
		}
		got := out.String()
		if !strings.HasPrefix(got, Banner+"\n") || !strings.Contains(got, "Agent: echo show recent events\n") {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("stops at EOF", func(t *testing.T) {
		asker := &stubAsker{}
		var out bytes.Buffer
		if err := New(asker, log.NewNop()).Run(context.Background(), strings.NewReader("hello"), &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(asker.queries) != 1 {
			t.Errorf("expected the last line without newline to be asked")
		}
	})

	t.Run("errors are printed", func(t *testing.T) {
		asker := &stubAsker{err: errors.New("llm down")}
		var out bytes.Buffer
		New(asker, log.NewNop()).Run(context.Background(), strings.NewReader("hi\nexit\n"), &out)
		if !strings.Contains(out.String(), "Agent: ❌ llm down\n") {
			t.Errorf("unexpected output %q", out.String())
		}
	})

	t.Run("returns when cancelled", func(t *testing.T) {
		pr, pw := io.Pipe()
		defer pw.Close()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- New(&stubAsker{}, log.NewNop()).Run(ctx, pr, io.Discard) }()

		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Run did not return after cancel")
		}
	})
}
