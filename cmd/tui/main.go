package main

import (
	"fmt"
	"os"

	"codeberg.org/wexam/server/internal/config"
	"codeberg.org/wexam/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
)

func main() {
	flags, err := config.ParseTUIFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if flags.File == "" {
		fmt.Fprintln(os.Stderr, "usage: wexam-tui -file notes.txt [-difficulty medium] [-type mcq] [-count 10]")
		os.Exit(2)
	}

	if !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "wexam-tui needs an interactive terminal")
		os.Exit(1)
	}

	text, err := os.ReadFile(flags.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", flags.File, err)
		os.Exit(1)
	}

	client := tui.NewClient(flags.ServerURL, os.Getenv("WEXAM_TOKEN"))
	app := tui.NewApp(client, tui.GenerateRequest{
		Text:       string(text),
		Difficulty: flags.Difficulty,
		Type:       flags.Type,
		Count:      flags.Count,
	})

	if width, height, err := term.GetSize(os.Stdout.Fd()); err == nil {
		app.Resize(width, height)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error running wexam-tui: %v\n", err)
		os.Exit(1)
	}
}
