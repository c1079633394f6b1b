package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/drpcorg/ripple"
	"github.com/drpcorg/ripple/utils"
	"github.com/ergochat/readline"
)

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),

	readline.PcItem("insert"),
	readline.PcItem("append"),
	readline.PcItem("remove"),
	readline.PcItem("set"),

	readline.PcItem("begin"),
	readline.PcItem("end"),

	readline.PcItem("show"),
	readline.PcItem("watch"),
	readline.PcItem("unwatch"),
	readline.PcItem("stats"),

	readline.PcItem("exit"),
	readline.PcItem("quit"),
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// REPL per se.
type REPL struct {
	Shell *Shell
	rl    *readline.Instance
}

func (repl *REPL) Open() (err error) {
	repl.rl, err = readline.NewEx(&readline.Config{
		Prompt:          "◌ ",
		HistoryFile:     ".ripple_cmd_log.txt",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return
	}
	repl.rl.CaptureExitSignal()
	return
}

func (repl *REPL) Close() error {
	if repl.rl != nil {
		_ = repl.rl.Close()
		repl.rl = nil
	}
	return nil
}

func (repl *REPL) REPL() error {
	line, err := repl.rl.Readline()
	if err == readline.ErrInterrupt {
		if len(line) == 0 {
			return io.EOF
		}
		return nil
	}
	if err != nil {
		return err
	}
	return repl.Shell.Execute(line)
}

func main() {
	level := slog.LevelWarn
	if len(os.Args) > 1 && os.Args[1] == "-v" {
		level = slog.LevelDebug
	}
	opts := ripple.Options{Logger: utils.NewDefaultLogger(level)}

	repl := REPL{Shell: NewShell(os.Stdout, opts)}
	err := repl.Open()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(-1)
	}
	defer repl.Close()

	for err != io.EOF {
		if err != nil {
			_, _ = fmt.Fprintf(os.Stdout, "%s\n", err.Error())
		}
		err = repl.REPL()
	}
}
