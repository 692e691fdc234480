package config

import (
	"flag"
	"os"
)

// parses CLI flags for the terminal quiz client
func ParseTUIFlags(args []string) (TUIFlags, error) {
	fs := flag.NewFlagSet("wexam-tui", flag.ContinueOnError)

	serverURL := fs.String("server", withDefault(os.Getenv("WEXAM_SERVER_URL"), "http://localhost:8080"), "wexam server base URL")
	file := fs.String("file", "", "path to a plain text file with study material")
	difficulty := fs.String("difficulty", "medium", "easy, medium, hard or hots")
	questionType := fs.String("type", "mcq", "mcq, short, long or mixed")
	count := fs.Int("count", 10, "number of questions (1-50)")

	if err := fs.Parse(args); err != nil {
		return TUIFlags{}, err
	}

	return TUIFlags{
		ServerURL:  *serverURL,
		File:       *file,
		Difficulty: *difficulty,
		Type:       *questionType,
		Count:      *count,
	}, nil
}
