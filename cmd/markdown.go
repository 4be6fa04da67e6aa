package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown for the terminal, or prints it as is with -plain.
func printMarkdown(md string) error {
	if *plainOutput {
		_, err := fmt.Fprintln(stdout, md)
		return err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return fmt.Errorf("cannot create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("cannot render markdown: %w", err)
	}
	_, err = fmt.Fprint(stdout, out)
	return err
}
