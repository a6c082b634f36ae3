package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var greetings = [...]string{
	"Your candidates are waiting. So is the dashboard.",
	"Every great hardware team started with one good test.",
	"A tolerance stack-up question never hurt anyone. Except bad hires.",
	"The GD&T section is ready. Are you?",
	"Somewhere a PCB layout is waiting to be reviewed.",
	"Hiring on vibes is a design flaw. Tests are the fix.",
	"Three candidates submitted while you read this. Probably.",
	"Good engineers show their work. So should their tests.",
	"Your pipeline looks empty from out here.",
	"The preview is free. Sign in to see who applied.",
}

func printGreeting(w io.Writer) {
	msg := greetings[rand.IntN(len(greetings))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7c6ff7")).
		Bold(true).
		Render("COLARE")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("To enter: recruit login --token <token>")

	_, _ = fmt.Fprintf(w, "\n%s\n\n%s\n\n%s\n\n", title, quote, hint)
}
