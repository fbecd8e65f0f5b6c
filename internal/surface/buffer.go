// SPDX-License-Identifier: MPL-2.0

package surface

import (
	"io"
	"strings"
	"sync"
)

type (
	// Buffer is an in-memory surface. It replays queued input and
	// confirmation answers and records everything printed.
	Buffer struct {
		mu      sync.Mutex
		input   []string
		answers []bool
		out     strings.Builder
		printed []Printed
		prompts []string
		clears  int
	}

	// Printed is one Print call as recorded by a Buffer.
	Printed struct {
		Text string
		Tags []Tag
	}
)

var _ Surface = (*Buffer)(nil)

// NewBuffer returns a Buffer that will answer ReadLine with input in order.
func NewBuffer(input ...string) *Buffer {
	return &Buffer{input: input}
}

// QueueAnswers appends answers for upcoming Confirm calls.
func (b *Buffer) QueueAnswers(answers ...bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.answers = append(b.answers, answers...)
}

// Print records text and a newline.
func (b *Buffer) Print(text string, tags ...Tag) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.WriteString(text + "\n")
	b.printed = append(b.printed, Printed{Text: text, Tags: tags})
}

// Write records spans as plain text.
func (b *Buffer) Write(spans ...Span) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.WriteString(PlainText(spans...))
}

// ReadLine returns the next queued line or io.EOF.
func (b *Buffer) ReadLine(prompt ...Span) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prompts = append(b.prompts, PlainText(prompt...))
	if len(b.input) == 0 {
		return "", io.EOF
	}
	line := b.input[0]
	b.input = b.input[1:]
	return line, nil
}

// Confirm returns the next queued answer, or false when none is left.
func (b *Buffer) Confirm(prompt string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prompts = append(b.prompts, prompt)
	if len(b.answers) == 0 {
		return false
	}
	a := b.answers[0]
	b.answers = b.answers[1:]
	return a
}

// Clear counts the call and discards recorded output.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clears++
	b.out.Reset()
}

// Output returns everything written since the last Clear.
func (b *Buffer) Output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.String()
}

// Reset discards recorded output and printed lines.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.Reset()
	b.printed = nil
}

// Printed returns the recorded Print calls.
func (b *Buffer) Printed() []Printed {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Printed(nil), b.printed...)
}

// Prompts returns every prompt shown by ReadLine and Confirm.
func (b *Buffer) Prompts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.prompts...)
}

// Clears returns how many times Clear was called.
func (b *Buffer) Clears() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clears
}
