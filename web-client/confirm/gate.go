// Package confirm abstracts the yes/no step in front of destructive actions.
package confirm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	PromptCancelBooking = "Are you sure you want to cancel this booking?"
	PromptDeleteEvent   = "Are you sure you want to delete this event? This action cannot be undone."
)

type Gate interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// GateFunc adapts a function to Gate.
type GateFunc func(ctx context.Context, prompt string) (bool, error)

func (f GateFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Always answers every prompt with answer.
func Always(answer bool) Gate {
	return GateFunc(func(context.Context, string) (bool, error) {
		return answer, nil
	})
}

// TerminalGate asks on out and reads the answer from in. Anything other than
// y or yes declines.
type TerminalGate struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminalGate(in *bufio.Reader, out io.Writer) *TerminalGate {
	return &TerminalGate{in: in, out: out}
}

func (g *TerminalGate) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := fmt.Fprintf(g.out, "%s [y/N]: ", prompt); err != nil {
		return false, fmt.Errorf("writing prompt: %w", err)
	}
	line, err := g.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
