package app

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danpilch/trainlist/internal/train"
)

const (
	promptNum         = "Enter train number: "
	promptDestination = "Enter destination: "
	promptStartTime   = "Enter departure time: "
)

func (a *App) promptRecord() (train.Record, error) {
	rawNum, err := a.ask(promptNum)
	if err != nil {
		return train.Record{}, err
	}
	num, err := strconv.Atoi(strings.TrimSpace(rawNum))
	if err != nil {
		return train.Record{}, fmt.Errorf("%w: invalid train number %q", ErrInvalidInput, rawNum)
	}

	destination, err := a.ask(promptDestination)
	if err != nil {
		return train.Record{}, err
	}
	startTime, err := a.ask(promptStartTime)
	if err != nil {
		return train.Record{}, err
	}

	return train.NewRecord(num, destination, startTime), nil
}

// ask prints the prompt and returns one line of input without its line
// terminator. A final line without a newline is accepted.
func (a *App) ask(prompt string) (string, error) {
	if _, err := io.WriteString(a.prompts, prompt); err != nil {
		return "", err
	}

	line, err := a.input.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if line == "" {
			return "", fmt.Errorf("%w: %w", ErrInvalidInput, io.ErrUnexpectedEOF)
		}
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
