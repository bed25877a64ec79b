package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/richclient/internal/config"
	"github.com/mrlokans/richclient/internal/richtext"
)

type TruncateCommand struct {
	textSource
	MaxLength int
}

func NewTruncateCommand() *TruncateCommand {
	return &TruncateCommand{textSource: newTextSource()}
}

func (cmd *TruncateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("truncate", flag.ContinueOnError)

	fs.StringVar(&cmd.Text, "text", "", "Text to truncate (reads stdin when omitted)")
	fs.IntVar(&cmd.MaxLength, "max", config.DefaultTruncateLength, "Maximum length before \"...\" is appended")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s truncate [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Shorten text to a maximum length, appending \"...\" when cut.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.MaxLength < 0 {
		fs.Usage()
		return fmt.Errorf("max must not be negative")
	}
	cmd.isSet = flagWasSet(fs, "text")
	return nil
}

func (cmd *TruncateCommand) Run() error {
	text, err := cmd.read()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.Out, richtext.TruncateText(text, cmd.MaxLength))
	return err
}
