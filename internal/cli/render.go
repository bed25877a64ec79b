package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/richclient/internal/richtext"
)

type RenderCommand struct {
	textSource
	Escape bool
}

func NewRenderCommand() *RenderCommand {
	return &RenderCommand{textSource: newTextSource()}
}

func (cmd *RenderCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)

	fs.StringVar(&cmd.Text, "text", "", "Text to render (reads stdin when omitted)")
	fs.BoolVar(&cmd.Escape, "escape", false, "Escape HTML in the input before adding links")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s render [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Convert plain text to HTML with clickable links and <br> line breaks.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s render -text 'Visit https://example.com'\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  cat note.txt | %s render -escape\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	cmd.isSet = flagWasSet(fs, "text")
	return nil
}

func (cmd *RenderCommand) Run() error {
	text, err := cmd.read()
	if err != nil {
		return err
	}

	var out string
	if cmd.Escape {
		out = string(richtext.RenderSafeRichText(text))
	} else {
		out = richtext.RenderRichText(text)
	}
	_, err = fmt.Fprintln(cmd.Out, out)
	return err
}

func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
