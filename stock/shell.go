package stock

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/XSnelliusX/LLM-Function-Calling-Demo/conversation"
	"github.com/XSnelliusX/LLM-Function-Calling-Demo/orchestrator"
)

// DefaultMaxAttempts bounds how often the user may retry the menu selection
const DefaultMaxAttempts = 3

// Shell is the interactive stock price demo
type Shell struct {
	In           io.Reader
	Out          io.Writer
	Orchestrator *orchestrator.Orchestrator
	Session      *Session
	MaxAttempts  int
}

// Run asks for a company, lets the user pick one of the matching symbols and
// prints the model's answer for the chosen one.
func (s *Shell) Run(ctx context.Context) error {
	if s.Orchestrator == nil || s.Session == nil {
		return errors.New("stock: shell is not configured")
	}
	in := bufio.NewReader(s.In)
	s.Session.Reset()

	query, err := s.prompt(in, "Enter the stock or company name you want to search for: ")
	if err != nil {
		return err
	}
	if query == "" {
		return ErrEmptyQuery
	}

	conv := conversation.New(
		conversation.WithSystemPrompt(SystemPrompt),
		conversation.WithMetadata(map[string]any{"query": query}),
	)
	answer, err := s.Orchestrator.Run(ctx, conv, fmt.Sprintf("What's the current stock price for %s?", query))
	if err != nil {
		return err
	}

	matches := s.Session.Matches
	if len(matches) == 0 {
		// The model answered without searching, or the search failed
		if !s.Orchestrator.Streaming() {
			fmt.Fprintln(s.Out, answer.Content)
		}
		return nil
	}

	fmt.Fprintln(s.Out)
	fmt.Fprint(s.Out, Menu(matches))
	index, err := s.choose(in, len(matches))
	if err != nil {
		return err
	}
	chosen := matches[index]

	answer, err = s.Orchestrator.Run(ctx, conv,
		fmt.Sprintf("I choose option %d (%s - %s).", index+1, chosen.Symbol, chosen.Name))
	if err != nil {
		return err
	}
	if !s.Orchestrator.Streaming() {
		fmt.Fprintln(s.Out)
		fmt.Fprintln(s.Out, answer.Content)
	}
	return nil
}

func (s *Shell) choose(in *bufio.Reader, n int) (int, error) {
	attempts := s.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	for i := 0; i < attempts; i++ {
		line, err := s.prompt(in, "\nEnter the number of your chosen symbol: ")
		if err != nil {
			return 0, err
		}
		index, err := ParseSelection(line, n)
		if err == nil {
			return index, nil
		}
		fmt.Fprintln(s.Out, err)
	}
	return 0, ErrTooManyAttempts
}

func (s *Shell) prompt(in *bufio.Reader, text string) (string, error) {
	fmt.Fprint(s.Out, text)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
