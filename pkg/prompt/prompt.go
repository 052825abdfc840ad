// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package prompt reads menu choices and y/n answers from a line-oriented input.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultMaxAttempts bounds how often an invalid answer is re-asked.
const DefaultMaxAttempts = 5

// ErrNoAnswer is returned when input ends or every attempt was invalid.
var ErrNoAnswer = errors.Base("no valid answer")

// 💬 Prompter asks questions on out and reads answers from in
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	maxAttempts int
	warn        *pterm.PrefixPrinter
}

// 🏭 New creates a prompter. maxAttempts below 1 uses DefaultMaxAttempts.
func New(in io.Reader, out io.Writer, maxAttempts int) *Prompter {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		maxAttempts: maxAttempts,
		warn:        pterm.Warning.WithWriter(out),
	}
}

// 📋 Choose shows a numbered menu and returns the selected option, 1-based.
// Anything that is not an integer in 1..len(options) is re-asked.
func (p *Prompter) Choose(ctx context.Context, title string, options []string) (int, error) {
	var menu strings.Builder
	fmt.Fprintf(&menu, "> %s: \n", title)
	for i, opt := range options {
		fmt.Fprintf(&menu, "\t%d. %s\n", i+1, opt)
	}
	menu.WriteString("> Please input action number: ")

	return ask(ctx, p, menu.String(), "Invalid action! Please try again.", func(answer string) (int, bool) {
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(options) {
			return 0, false
		}
		return n, true
	})
}

// ❓ Confirm asks a y/n question. Only "y" and "n" are accepted.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	return ask(ctx, p, question+" (y/n): ", "Invalid input! Please try again.", func(answer string) (bool, bool) {
		switch answer {
		case "y":
			return true, true
		case "n":
			return false, true
		default:
			return false, false
		}
	})
}

func ask[T any](ctx context.Context, p *Prompter, question, invalid string, parse func(string) (T, bool)) (T, error) {
	logger := zerolog.Ctx(ctx)
	var zero T

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		fmt.Fprint(p.out, question)
		answer, err := p.readLine()
		if err != nil {
			fmt.Fprintln(p.out)
			return zero, errors.WithDetails(ErrNoAnswer, "cause", err.Error())
		}

		if v, ok := parse(answer); ok {
			return v, nil
		}

		logger.Debug().Str("answer", answer).Int("attempt", attempt).Msg("invalid answer")
		p.warn.Println(invalid)
	}

	return zero, errors.WithDetails(ErrNoAnswer, "attempts", p.maxAttempts)
}

// readLine returns the next line without surrounding whitespace. A final line
// without a newline is returned; io.EOF is returned only when nothing was read.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
