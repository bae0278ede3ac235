package workflow

import (
	"fmt"
	"io"
	"strings"

	"github.com/bassamadnan/supportdraft/compose"
	"github.com/charmbracelet/lipgloss"
)

const separatorWidth = 50

// Reporter prints human-readable progress lines. Colors are only emitted
// when out is a terminal.
type Reporter struct {
	out io.Writer

	headingStyle lipgloss.Style
	mutedStyle   lipgloss.Style
	keyStyle     lipgloss.Style
	okStyle      lipgloss.Style
	failStyle    lipgloss.Style
}

func NewReporter(out io.Writer) *Reporter {
	r := lipgloss.NewRenderer(out)
	return &Reporter{
		out:          out,
		headingStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		mutedStyle:   r.NewStyle().Foreground(lipgloss.Color("240")),
		keyStyle:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		okStyle:      r.NewStyle().Foreground(lipgloss.Color("28")),
		failStyle:    r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

func (r *Reporter) println(s string) {
	fmt.Fprintln(r.out, s)
}

func (r *Reporter) Scanning() {
	r.println("Scanning for emails...")
}

func (r *Reporter) Found(n int, kind string) {
	r.println(fmt.Sprintf("\nFound %d %s emails.", n, kind))
}

// Answering announces email i (1-based) of n.
func (r *Reporter) Answering(i, n int, subject string) {
	r.println("\n" + r.headingStyle.Render(fmt.Sprintf("Answering Email %d of %d", i, n)))
	r.println(r.mutedStyle.Render(strings.Repeat("-", separatorWidth)))
	r.println(r.keyStyle.Render("Subject:") + " " + subject)
}

// Reply reports how the reply body was chosen. Replies that were neither
// classified nor a fallback print nothing.
func (r *Reporter) Reply(reply compose.Reply) {
	switch {
	case reply.Custom:
		r.println("No default answer category detected, creating a custom response...")
	case reply.Category > 0:
		r.println(fmt.Sprintf("%s %d : %s", r.keyStyle.Render("Category:"), reply.Category, reply.CategoryName))
	}
}

func (r *Reporter) Skipped(subject, reason string) {
	r.println(r.mutedStyle.Render(fmt.Sprintf("Skipped email with subject: %s (%s)", subject, reason)))
}

func (r *Reporter) Drafted(subject string) {
	r.println(r.okStyle.Render("Draft created for email with subject: " + subject))
}

func (r *Reporter) DraftFailed(subject string) {
	r.println(r.failStyle.Render("Draft failed for email with subject: " + subject))
}

func (r *Reporter) Sent(subject, to string) {
	r.println(r.okStyle.Render(fmt.Sprintf("Reply sent to %s for email with subject: %s", to, subject)))
}

func (r *Reporter) SendFailed(subject string) {
	r.println(r.failStyle.Render("Reply failed for email with subject: " + subject))
}

func (r *Reporter) Done(s Summary) {
	r.println(fmt.Sprintf("\nDone: %d found, %d answered, %d skipped, %d failed.", s.Found, s.Answered, s.Skipped, s.Failed))
}
