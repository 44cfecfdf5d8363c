package weather

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

// Shell is the weather demo: one question, one answer
type Shell struct {
	In           io.Reader
	Out          io.Writer
	Orchestrator *orchestrator.Orchestrator
}

func (s *Shell) Run(ctx context.Context) error {
	if s.Orchestrator == nil {
		return errors.New("weather: shell is not configured")
	}

	fmt.Fprintf(s.Out, "Ask about the weather [%s]: ", DefaultQuestion)
	line, err := bufio.NewReader(s.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	question := strings.TrimSpace(line)
	if question == "" {
		question = DefaultQuestion
	}

	conv := conversation.New(conversation.WithSystemPrompt(SystemPrompt))
	answer, err := s.Orchestrator.Run(ctx, conv, question)
	if err != nil {
		return err
	}
	if !s.Orchestrator.Streaming() {
		fmt.Fprintln(s.Out, answer.Content)
	}
	return nil
}
