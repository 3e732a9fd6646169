// Package console implements the interactive journal entry manager: adding
// an entry from prompted input, listing entries and the numbered menu that
// dispatches between them.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen/learning-journal/internal/domain"
	"github.com/jsamuelsen/learning-journal/internal/ports"
)

const (
	ruleWidth      = 50
	previewRunes   = 100
	previewSuffix  = "..."
	menuAdd        = "1"
	menuList       = "2"
	menuExit       = "3"
	tagSeparator   = ", "
	successMessage = "✓ Entry saved successfully!"
)

var (
	thickRule = strings.Repeat("=", ruleWidth)
	thinRule  = strings.Repeat("-", ruleWidth)
)

// styles holds the lipgloss styles bound to the output renderer. Writers
// that are not terminals get the ASCII profile and render plain text.
type styles struct {
	header  lipgloss.Style
	prompt  lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)

	return styles{
		header:  r.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		prompt:  r.NewStyle().Foreground(lipgloss.Color("45")),
		success: r.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		err:     r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		dim:     r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Console reads answers from in and writes prompts and results to out.
type Console struct {
	journal ports.Journal
	in      *bufio.Reader
	out     io.Writer
	now     func() time.Time
	styles  styles
}

// Option configures a Console.
type Option func(*Console)

// WithClock overrides the clock used for the default entry date.
func WithClock(now func() time.Time) Option {
	return func(c *Console) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a console over journal.
func New(journal ports.Journal, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		journal: journal,
		in:      bufio.NewReader(in),
		out:     out,
		now:     time.Now,
		styles:  newStyles(out),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Add prompts for one entry and stores it. Missing title or content is
// reported to the user and nothing is written; the returned error is nil
// in that case. Storage failures are returned.
func (c *Console) Add(ctx context.Context) error {
	c.println()
	c.println(c.styles.header.Render(thickRule))
	c.println(c.styles.header.Render("Learning Journal - Add New Entry"))
	c.println(c.styles.header.Render(thickRule))
	c.println()
	c.println("Enter entry details (press Enter to use defaults):")

	date := strings.TrimSpace(c.ask("Date (YYYY-MM-DD) [today]: "))
	if date == "" {
		date = c.now().Format(domain.DateLayout)
	}

	title := strings.TrimSpace(c.ask("Title: "))
	if title == "" {
		c.fail("Title is required!")
		return nil
	}

	c.println(c.styles.prompt.Render("Content (press Enter twice to finish):"))

	content := c.readContent()
	if content == "" {
		c.fail("Content is required!")
		return nil
	}

	tags := domain.ParseTags(c.ask("Tags (comma-separated): "))

	created, err := c.journal.Create(ctx, domain.NewReflection{
		Date:    date,
		Title:   title,
		Content: content,
		Tags:    tags,
	})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.fail(verr.Message)
			return nil
		}

		c.fail("Failed to save entry.")

		return fmt.Errorf("saving entry: %w", err)
	}

	c.println(c.styles.success.Render(successMessage))

	entries, err := c.journal.List(ctx)
	if err != nil {
		return fmt.Errorf("counting entries: %w", err)
	}

	c.println()
	c.println(c.styles.success.Render(fmt.Sprintf("Entry #%d added successfully!", created.ID)))
	c.printf("Total entries: %d\n", len(entries))

	return nil
}

// List prints every entry with its content shortened to a preview.
func (c *Console) List(ctx context.Context) error {
	entries, err := c.journal.List(ctx)
	if err != nil {
		c.fail("Failed to load entries.")
		return fmt.Errorf("loading entries: %w", err)
	}

	if len(entries) == 0 {
		c.println()
		c.println(c.styles.dim.Render("No entries found."))

		return nil
	}

	c.println()
	c.println(c.styles.header.Render(thickRule))
	c.println(c.styles.header.Render(fmt.Sprintf("Total Entries: %d", len(entries))))
	c.println(c.styles.header.Render(thickRule))
	c.println()

	for i := range entries {
		c.printEntry(&entries[i])
	}

	return nil
}

// Menu shows the numbered menu once and runs the selected action.
func (c *Console) Menu(ctx context.Context) error {
	c.println(c.styles.header.Render("Learning Journal - Entry Manager"))
	c.println(c.styles.header.Render(thickRule))
	c.println("1. Add new entry")
	c.println("2. List all entries")
	c.println("3. Exit")

	c.println()

	choice := strings.TrimSpace(c.ask("Select an option (1-3): "))

	switch choice {
	case menuAdd:
		return c.Add(ctx)
	case menuList:
		return c.List(ctx)
	case menuExit:
		c.println("Goodbye!")
		return nil
	default:
		c.fail("Invalid choice!")
		return nil
	}
}

func (c *Console) printEntry(r *domain.Reflection) {
	c.printf("ID: %d\n", r.ID)
	c.printf("Date: %s\n", r.Date)
	c.printf("Title: %s\n", r.Title)
	c.printf("Tags: %s\n", strings.Join(r.Tags, tagSeparator))
	c.printf("Content: %s\n", Preview(r.Content))
	c.println(c.styles.dim.Render(thinRule))
}

// Preview shortens content to its first 100 runes, marking the cut with "...".
func Preview(content string) string {
	if utf8.RuneCountInString(content) <= previewRunes {
		return content
	}

	return string([]rune(content)[:previewRunes]) + previewSuffix
}

// readContent collects lines until two consecutive empty lines or end of
// input. The empty line that ended the text is not part of it.
func (c *Console) readContent() string {
	var lines []string

	for {
		line, ok := c.readLine()
		if !ok {
			break
		}

		if line == "" && len(lines) > 0 && lines[len(lines)-1] == "" {
			break
		}

		lines = append(lines, line)
	}

	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	return strings.Join(lines, "\n")
}

func (c *Console) ask(prompt string) string {
	c.printf("%s", c.styles.prompt.Render(prompt))

	line, _ := c.readLine()

	return line
}

// readLine returns the next line without its terminator. ok is false once
// the input is exhausted and nothing was read.
func (c *Console) readLine() (string, bool) {
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}

	return strings.TrimRight(line, "\r\n"), true
}

func (c *Console) fail(msg string) {
	c.println(c.styles.err.Render("Error: " + msg))
}

func (c *Console) println(a ...any) {
	_, _ = fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.out, format, a...)
}
