package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/drpcorg/ripple"
	"github.com/drpcorg/ripple/broadcast"
	"github.com/drpcorg/ripple/delta"
	"github.com/drpcorg/ripple/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Shell edits one observable array of strings.
type Shell struct {
	Array *ripple.Array[string]

	out   io.Writer
	log   utils.Logger
	watch *broadcast.Subscription
	reg   *prometheus.Registry
}

func NewShell(out io.Writer, opts ripple.Options) *Shell {
	opts.SetDefaults()
	reg := prometheus.NewRegistry()
	reg.MustRegister(broadcast.Collectors()...)
	return &Shell{
		Array: ripple.NewArray[string](opts),
		out:   out,
		log:   opts.Logger,
		reg:   reg,
	}
}

var (
	HelpInsert = errors.New("insert <index> <value>...")
	HelpAppend = errors.New("append <value>...")
	HelpRemove = errors.New("remove <index> [<count>]")
	HelpSet    = errors.New("set <index> <value>")
	HelpShow   = errors.New("show [<from> [<to>]]")
)

var ErrUnknownCommand = errors.New("command unknown")

const help = `insert <index> <value>...   insert values before index
append <value>...           append values
remove <index> [<count>]    remove count values (1 by default)
set <index> <value>         replace one value
begin, end                  open and close a transaction
show [<from> [<to>]]        print values
watch, unwatch              print every published change
stats                       print delivery counters
exit, quit
`

// Execute runs one command line. Broken preconditions inside the array come
// back as errors; exit and quit return io.EOF.
func (sh *Shell) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd, rest, _ := strings.Cut(line, " ")
	ctx := utils.WithDefaultArgs(context.Background(), "command", cmd)
	err := sh.execute(cmd, strings.Fields(rest))
	switch {
	case err == nil:
		sh.log.DebugCtx(ctx, "shell: done", "len", sh.Array.Len())
	case errors.Is(err, io.EOF):
		sh.log.DebugCtx(ctx, "shell: bye")
	default:
		sh.log.WarnCtx(ctx, "shell: command failed", "err", err)
	}
	return err
}

func (sh *Shell) execute(cmd string, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()
	switch cmd {
	case "insert":
		return sh.CommandInsert(args)
	case "append":
		return sh.CommandAppend(args)
	case "remove", "rm":
		return sh.CommandRemove(args)
	case "set":
		return sh.CommandSet(args)
	case "begin":
		sh.Array.BeginTransaction()
	case "end":
		sh.Array.EndTransaction()
	case "show", "ls":
		return sh.CommandShow(args)
	case "watch":
		sh.CommandWatch()
	case "unwatch":
		sh.CommandUnwatch()
	case "stats":
		return sh.CommandStats()
	case "help":
		_, _ = io.WriteString(sh.out, help)
	case "exit", "quit":
		sh.CommandUnwatch()
		return io.EOF
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	return nil
}

func (sh *Shell) CommandInsert(args []string) error {
	if len(args) < 2 {
		return HelpInsert
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return HelpInsert
	}
	sh.Array.Insert(i, args[1:]...)
	return nil
}

func (sh *Shell) CommandAppend(args []string) error {
	if len(args) == 0 {
		return HelpAppend
	}
	sh.Array.Append(args...)
	return nil
}

func (sh *Shell) CommandRemove(args []string) (err error) {
	if len(args) == 0 || len(args) > 2 {
		return HelpRemove
	}
	i, n := 0, 1
	if i, err = strconv.Atoi(args[0]); err != nil {
		return HelpRemove
	}
	if len(args) == 2 {
		if n, err = strconv.Atoi(args[1]); err != nil || n < 0 {
			return HelpRemove
		}
	}
	sh.Array.RemoveRange(i, i+n)
	return nil
}

func (sh *Shell) CommandSet(args []string) error {
	if len(args) != 2 {
		return HelpSet
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return HelpSet
	}
	sh.Array.Set(i, args[1])
	return nil
}

// CommandShow clamps its bounds to the array.
func (sh *Shell) CommandShow(args []string) error {
	bounds := []int{0, sh.Array.Len()}
	if len(args) > len(bounds) {
		return HelpShow
	}
	for k, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return HelpShow
		}
		bounds[k] = utils.Clamp(n, 0, sh.Array.Len())
	}
	from, to := bounds[0], max(bounds[0], bounds[1])
	for k, v := range sh.Array.Slice(from, to) {
		_, _ = fmt.Fprintf(sh.out, "%d\t%s\n", from+k, v)
	}
	return nil
}

func (sh *Shell) CommandWatch() {
	if sh.watch != nil {
		return
	}
	sh.watch = sh.Array.Changes().Connect(func(c delta.ChangeSet[string]) {
		_, _ = fmt.Fprintf(sh.out, "change %s\n", c)
	})
}

func (sh *Shell) CommandUnwatch() {
	if sh.watch != nil {
		sh.watch.Disconnect()
		sh.watch = nil
	}
}

func (sh *Shell) CommandStats() error {
	families, err := sh.reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			_, _ = fmt.Fprintf(sh.out, "%s{%s}\t%g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
	return nil
}
