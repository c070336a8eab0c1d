package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"

	"github.com/olivier-w/folio/internal/config"
	"github.com/olivier-w/folio/internal/contact"
	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/ui"
)

func main() {
	env := config.FromEnv()

	// an optional argument names the section to open at, like a URL fragment
	var start string
	if len(os.Args) > 1 {
		start = os.Args[1]
		if content.IndexOf(start) < 0 {
			fmt.Fprintf(os.Stderr, "Error: unknown section %q\n", start)
			os.Exit(1)
		}
	}

	if env.DebugLog != "" {
		f, err := tea.LogToFile(env.DebugLog, "folio")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	tuning, err := config.Load(env.TuningPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	model, err := ui.New(tuning, contact.NewClient(env.RelayURL))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if start != "" {
		model = model.OpenAt(start)
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
