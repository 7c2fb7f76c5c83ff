package main

import (
	"fmt"
	"os"
	"strings"

	cli "github.com/spf13/pflag"

	"jarvis/internal/ipc"
)

func main() {
	socket := cli.StringP("socket", "s", ipc.DefaultSocketPath, "Control socket path")
	ping := cli.Bool("ping", false, "Only check that the daemon is running")
	cli.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: jarvis-ctl [--socket path] jarvis <command>")
		cli.PrintDefaults()
	}
	cli.Parse()

	msg := ipc.ControlMessage{Cmd: ipc.CmdPing}
	if !*ping {
		text := strings.TrimSpace(strings.Join(cli.Args(), " "))
		if text == "" {
			cli.Usage()
			os.Exit(2)
		}
		msg = ipc.ControlMessage{Cmd: ipc.CmdSay, Text: text}
	}

	if err := ipc.Send(*socket, msg); err != nil {
		fmt.Fprintln(os.Stderr, "jarvis not running:", err)
		os.Exit(1)
	}
}
