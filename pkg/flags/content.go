package flags

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/noted/internal/markup"
)

func AddTitle(cmd *cobra.Command) {
	cmd.Flags().StringP("title", "t", "", "Note title")
}

func AddContent(cmd *cobra.Command) {
	cmd.Flags().StringP("content", "c", "", "Note content (markup is stored as given)")
	cmd.Flags().StringP("file", "f", "", "Read note content from a markdown file")
	cmd.MarkFlagsMutuallyExclusive("content", "file")
}

// HandleContent returns the note content from --content or --file. Markdown
// files are converted to HTML markup. The bool is false when neither flag was
// given.
func HandleContent(cmd *cobra.Command) (string, bool, error) {
	if cmd.Flags().Changed("file") {
		path := HandleString(cmd, "file")
		src, err := os.ReadFile(path)
		if err != nil {
			return "", false, fmt.Errorf("error reading %s: %w", path, err)
		}
		html, err := markup.FromMarkdown(string(src))
		if err != nil {
			return "", false, fmt.Errorf("error converting %s: %w", path, err)
		}
		return html, true, nil
	}

	if cmd.Flags().Changed("content") {
		return HandleString(cmd, "content"), true, nil
	}

	return "", false, nil
}

// HandleTitle returns --title and whether it was given.
func HandleTitle(cmd *cobra.Command) (string, bool) {
	return HandleString(cmd, "title"), cmd.Flags().Changed("title")
}
