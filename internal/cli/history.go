package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/chzyer/readline"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

func (cli *CLI) runWithHistory() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "(? for Help)\033[32m»\033[0m ",
		HistoryFile:     "/tmp/merchdash.history",
		AutoComplete:    cli.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start prompt: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF, readline.ErrInterrupt
			break
		}
		if quit := cli.dispatch(strings.TrimSpace(line)); quit {
			fmt.Fprintln(cli.out, "Exiting merchdash")
			return nil
		}
	}

	return nil
}

// dispatch runs one line of input and reports whether the user asked to quit.
func (cli *CLI) dispatch(line string) bool {
	if line == "" {
		return false
	}

	switch line {
	case "quit", "exit":
		return true
	case "help", "h", "?":
		cli.printHelp()
	case "version", "v":
		cli.printVersion()
	case "clear", "cls":
		cli.ClearTerminal()
	case "stats", "status":
		cli.printStats()
	case "stop-all":
		if err := cli.StopAllWorkers(); err != nil {
			cli.view.Error(err.Error())
			break
		}
		fmt.Fprintln(cli.out, "All background workers stopped")
	case "stop":
		if err := cli.stopWorker(); err != nil {
			cli.view.Error(fmt.Sprintf("stopping worker: %s", err))
		}
	default:
		command, ok := cli.commands[line]
		if !ok {
			fmt.Fprintf(cli.out, "Invalid command: %s\n", line)
			return false
		}

		fmt.Fprintf(cli.out, "%s: %s\n", command.Name(), command.Synopsis())
		if err := command.Execute(); err != nil {
			cli.logger.WithError(err).WithField("command", command.Name()).Debug("command failed")
			fmt.Fprintf(cli.out, "Error executing command: %s\n", err)
		}
	}
	return false
}

func (cli *CLI) completer() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("help"),
		readline.PcItem("version"),
		readline.PcItem("clear"),
		readline.PcItem("quit"),
		readline.PcItem("stats"),
		readline.PcItem("stop-all"),
		readline.PcItem("stop"),
	}
	for name := range cli.commands {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

// stopWorker asks which worker to stop when more than one is running.
func (cli *CLI) stopWorker() error {
	ids := cli.WorkerIDs()
	if len(ids) == 0 {
		fmt.Fprintln(cli.out, "No background workers running")
		return nil
	}

	id := ids[0]
	if len(ids) > 1 {
		err := survey.AskOne(&survey.Select{
			Message: "Select a worker to stop:",
			Options: ids,
		}, &id)
		if errors.Is(err, terminal.InterruptErr) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	if err := cli.StopWorker(id); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Stopped worker %s\n", id)
	return nil
}

func (cli *CLI) printStats() {
	cli.view.RequestStats(cli.requestStats, cli.fetchStats)
	printWorkerTable(cli.out, cli.GetWorkerStats(), time.Now())
}

func printWorkerTable(out io.Writer, stats map[string]interface{}, now time.Time) {
	workers, _ := stats["workers"].([]map[string]interface{})
	if len(workers) == 0 {
		fmt.Fprintln(out, "No background workers running")
		return
	}

	fmt.Fprintf(out, "\nBackground workers: %d\n", stats["active"])
	table := tablewriter.NewWriter(out)
	table.Header("ID", "Name", "Interval", "Runtime", "State", "Last Update", "Rows", "Last Error")
	for _, w := range workers {
		state := "polling"
		if paused, _ := w["paused"].(bool); paused {
			state = "paused"
		}
		updated := "never"
		if t, _ := w["last_update"].(time.Time); !t.IsZero() {
			updated = humanize.RelTime(t, now, "ago", "from now")
		}
		table.Append([]string{
			fmt.Sprint(w["id"]),
			fmt.Sprint(w["name"]),
			fmt.Sprint(w["interval"]),
			fmt.Sprint(w["runtime"]),
			state,
			updated,
			strconv.Itoa(w["batch"].(int)),
			fmt.Sprint(w["last_error"]),
		})
	}
	table.Render()
}
