package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/richclient/internal/richtext"
)

// URLsCommand prints every URL in the input, one per line. With -check it
// prints nothing and reports through the returned error instead.
type URLsCommand struct {
	textSource
	Check bool
}

// ErrNoURLs is returned by URLsCommand in -check mode when the input has no URL.
var ErrNoURLs = errors.New("no urls found")

func NewURLsCommand() *URLsCommand {
	return &URLsCommand{textSource: newTextSource()}
}

func (cmd *URLsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("urls", flag.ContinueOnError)

	fs.StringVar(&cmd.Text, "text", "", "Text to scan (reads stdin when omitted)")
	fs.BoolVar(&cmd.Check, "check", false, "Only check whether the text contains a URL")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s urls [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List http(s) URLs found in text.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	cmd.isSet = flagWasSet(fs, "text")
	return nil
}

func (cmd *URLsCommand) Run() error {
	text, err := cmd.read()
	if err != nil {
		return err
	}

	if cmd.Check {
		if !richtext.HasURLs(text) {
			return ErrNoURLs
		}
		return nil
	}

	for _, u := range richtext.ExtractURLs(text) {
		if _, err := fmt.Fprintln(cmd.Out, u); err != nil {
			return err
		}
	}
	return nil
}
