// Package advisor implements a Gemini backed assistant answering questions
// about the household finances.
package advisor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Advisor is the AI assistant that handles the chat session.
type Advisor struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Print writes an answer, markdown formatted. Defaults to plain text.
	Print func(w io.Writer, markdown string)
}

// New creates an Advisor reading questions from r and writing answers to w.
func New(model string, w io.Writer, r io.Reader, experts ...*Expert) *Advisor {
	return &Advisor{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(model, experts...),
		Print:       func(w io.Writer, md string) { fmt.Fprintln(w, md) },
	}
}

// Start opens every chat session.
func (a *Advisor) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// Run starts the chat sessions if needed, asks the queued questions as if
// they were typed, then reads questions until the user says bye or the input
// ends.
func (a *Advisor) Run(ctx context.Context, client *genai.Client, queued ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.loop(ctx, queued)
}

func (a *Advisor) loop(ctx context.Context, queued []string) error {
	fmt.Fprintln(a.w, "Ask about your accounts, budgets, debts and assets.")
	fmt.Fprintln(a.w, "'@<expert> <question>' asks one expert directly, 'bye' exits.")
	for {
		question, err := a.next(&queued)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if question == "" {
			continue
		}
		if goodbye(question) {
			return nil
		}

		answer, err := a.answer(ctx, question)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			// the session goes on, the next question may work.
			fmt.Fprintf(a.w, "Error: %v\n", err)
			continue
		}
		a.Print(a.w, answer)
	}
}

// next prompts for the next question, taking queued ones first.
func (a *Advisor) next(queued *[]string) (string, error) {
	fmt.Fprint(a.w, prompt)
	if len(*queued) > 0 {
		q := strings.TrimSpace((*queued)[0])
		*queued = (*queued)[1:]
		fmt.Fprintln(a.w, q)
		return q, nil
	}
	line, err := a.r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// answer sends the question to the expert it starts with, or else to the
// facilitator.
func (a *Advisor) answer(ctx context.Context, question string) (string, error) {
	name, rest, _ := strings.Cut(question, " ")
	if !strings.HasPrefix(name, "@") {
		return a.Facilitator.Ask(ctx, &genai.Part{Text: question})
	}
	for _, e := range a.Experts {
		if strings.EqualFold(e.Name, name[1:]) {
			return e.Ask(ctx, &genai.Part{Text: strings.TrimSpace(rest)})
		}
	}
	return "", fmt.Errorf("no expert named %q", name[1:])
}

func goodbye(s string) bool {
	switch strings.ToLower(s) {
	case "bye", "exit", "quit":
		return true
	}
	return false
}
