package main

import (
	"flag"
	"fmt"
	"os"

	"vidxiv/demo/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", "http://localhost:8080", "pipeline API base URL")
	paperID := flag.String("paper", "1706.03762", "arXiv paper ID to render")
	flag.Parse()

	p := tea.NewProgram(tui.NewModel(*apiURL, *paperID), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "demo error: %v\n", err)
		os.Exit(1)
	}
}
