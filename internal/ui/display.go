// Package ui renders the terminal interface: status lines, the report
// card, chat messages, history tables, and the upload progress bar.
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/Mdsinan09/hcis-project/internal/chat"
	"github.com/Mdsinan09/hcis-project/internal/history"
	"github.com/Mdsinan09/hcis-project/internal/report"
	"github.com/Mdsinan09/hcis-project/internal/sanitize"
)

// Display provides terminal output helpers.
type Display struct {
	width    int
	verbose  bool
	renderer *glamour.TermRenderer

	infoC    *color.Color
	warnC    *color.Color
	errC     *color.Color
	successC *color.Color
	dimC     *color.Color
	boldC    *color.Color
}

// NewDisplay creates a display. colorEnabled toggles all ANSI color output;
// verbose gates informational detail lines.
func NewDisplay(colorEnabled, verbose bool) *Display {
	if !colorEnabled {
		color.NoColor = true
	}

	width := terminalWidth()
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(width-4, 100)),
	)

	return &Display{
		width:    width,
		verbose:  verbose,
		renderer: renderer,
		infoC:    color.New(color.FgCyan),
		warnC:    color.New(color.FgYellow),
		errC:     color.New(color.FgRed),
		successC: color.New(color.FgGreen),
		dimC:     color.New(color.Faint),
		boldC:    color.New(color.Bold),
	}
}

// PrintWelcome displays the startup banner.
func (d *Display) PrintWelcome(backendURL string) {
	d.boldC.Println("HCIS - Holistic Content Integrity System")
	d.dimC.Printf("Backend: %s\n", backendURL)
	d.dimC.Println("Commands: /analyze <file> [text-file] | /report | /history | /export | /reset | /clear | /exit")
	d.dimC.Println("Anything else is sent to the assistant.")
	fmt.Println()
}

// PrintGoodbye displays the exit message.
func (d *Display) PrintGoodbye() {
	d.infoC.Println("\nGoodbye!")
}

// PrintPrompt displays the user input prompt.
func (d *Display) PrintPrompt() {
	d.successC.Print("\n> ")
}

// PrintInfo displays an info message.
func (d *Display) PrintInfo(msg string) {
	d.infoC.Printf("i %s\n", msg)
}

// PrintDetail displays an info message only in verbose mode.
func (d *Display) PrintDetail(msg string) {
	if d.verbose {
		d.dimC.Printf("  %s\n", msg)
	}
}

// PrintWarning displays a warning message.
func (d *Display) PrintWarning(msg string) {
	d.warnC.Printf("! %s\n", msg)
}

// PrintError displays an error message.
func (d *Display) PrintError(err error) {
	d.errC.Printf("x Error: %v\n", err)
}

// PrintSuccess displays a success message.
func (d *Display) PrintSuccess(msg string) {
	d.successC.Printf("+ %s\n", msg)
}

// ClearScreen clears the terminal.
func (d *Display) ClearScreen() {
	fmt.Print("\033[2J\033[H")
}

// DrawProgress renders the upload progress bar in place. The session
// controller guarantees the sequence is non-decreasing and ends at 100.
func (d *Display) DrawProgress(percent int) {
	barWidth := min(d.width-12, 40)
	if barWidth < 10 {
		barWidth = 10
	}
	filled := barWidth * percent / 100
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
	fmt.Printf("\r[%s] %3d%%", bar, percent)
	if percent >= 100 {
		fmt.Println()
	}
}

// PrintUserMessage displays a user chat message with timestamp.
func (d *Display) PrintUserMessage(msg chat.Message) {
	d.dimC.Printf("\n[%s] You:\n", msg.Timestamp.Format("15:04:05"))
	fmt.Println(msg.Content)
}

// PrintAssistantMessage displays an assistant chat message, rendering its
// content as terminal markdown.
func (d *Display) PrintAssistantMessage(msg chat.Message) {
	d.dimC.Printf("\n[%s] Assistant:\n", msg.Timestamp.Format("15:04:05"))
	fmt.Println(d.RenderMarkdown(msg.Content))
}

// PrintChatLog displays the whole conversation in append order.
func (d *Display) PrintChatLog(messages []chat.Message) {
	for _, msg := range messages {
		if msg.Role == chat.RoleUser {
			d.PrintUserMessage(msg)
		} else {
			d.PrintAssistantMessage(msg)
		}
	}
}

// RenderMarkdown renders untrusted assistant text for the terminal. The
// glamour pipeline escapes raw HTML; when rendering fails the text is
// stripped to plain text instead so markup never reaches the screen raw.
func (d *Display) RenderMarkdown(s string) string {
	if d.renderer != nil {
		if rendered, err := d.renderer.Render(s); err == nil {
			return strings.TrimRight(rendered, "\n")
		}
	}
	return sanitize.Strip(s)
}

// PrintReport displays the report card: scores with classified labels,
// active modalities, and the assistant's explanation.
func (d *Display) PrintReport(rep *report.AnalysisReport) {
	if rep == nil {
		d.PrintInfo("No report available yet.")
		return
	}

	fmt.Println()
	d.boldC.Printf("Integrity Report: %s\n", rep.FileName)
	if rep.FileSize > 0 {
		d.dimC.Printf("%d bytes, analyzed %s\n", rep.FileSize, rep.Timestamp.Format(time.RFC1123))
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Modality", "Score", "Status"})
	table.SetBorder(false)
	table.Append(scoreRow("Fusion", rep.FusionScore))
	table.Append(scoreRow("Video", rep.VideoScore))
	table.Append(scoreRow("Audio", rep.AudioScore))
	table.Append(scoreRow("Text", rep.TextScore))
	table.Render()

	if active := rep.ActiveModalities(); len(active) > 0 {
		names := make([]string, len(active))
		for i, m := range active {
			names[i] = string(m)
		}
		d.dimC.Printf("Analyzed modalities: %s\n", strings.Join(names, ", "))
	} else {
		d.dimC.Println("No individual modalities were analyzed.")
	}

	fmt.Println()
	d.boldC.Println("Explanation")
	fmt.Println(d.RenderMarkdown(rep.Explanation))
}

// PrintHistoryTable displays persisted reports, most recent first.
func (d *Display) PrintHistoryTable(records []history.Record) {
	if len(records) == 0 {
		d.PrintInfo("History is empty.")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "File", "Analyzed", "Fusion", "Status"})
	table.SetBorder(false)
	for _, rec := range records {
		cls := report.Classify(rec.Report.FusionScore)
		table.Append([]string{
			rec.ID,
			truncate(rec.Report.FileName, 32),
			rec.Report.Timestamp.Format("2006-01-02 15:04"),
			fmt.Sprintf("%.1f", rec.Report.FusionScore),
			colorizeLabel(cls),
		})
	}
	table.Render()
}

// scoreRow formats one score line with its classification, showing "-" for
// modalities that were not analyzed.
func scoreRow(name string, score float64) []string {
	cls := report.Classify(score)
	scoreText := fmt.Sprintf("%.1f", score)
	if cls.Severity == report.SeverityNeutral {
		scoreText = "-"
	}
	return []string{name, scoreText, colorizeLabel(cls)}
}

// colorizeLabel colors a classification label by severity.
func colorizeLabel(cls report.Classification) string {
	switch cls.Severity {
	case report.SeverityHigh:
		return color.New(color.FgRed).Sprint(cls.Label)
	case report.SeverityMedium:
		return color.New(color.FgYellow).Sprint(cls.Label)
	case report.SeverityLow:
		return color.New(color.FgGreen).Sprint(cls.Label)
	}
	return color.New(color.Faint).Sprint(cls.Label)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
