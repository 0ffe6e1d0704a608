// Command swapcli is a thin frontend around swapd: it has no state of
// its own and never talks to either chain directly. It renders a swap's
// setup parameters into the JSON file swapd expects, decodes the framed
// messages swapd emits into something a human can read, and emits the
// single-line commands swapd's stdin protocol expects to trigger a
// redeem, refund, or secret recovery.
//
// Grounded on cmd/lncli's App/Commands split (main.go/commands.go),
// trimmed of the gRPC client and macaroon plumbing: this module has no
// RPC server, only swapd's own stdin/stdout transport (see DESIGN.md).
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[swapcli] %v\n", err)
	os.Exit(1)
}

func main() {
	app := cli.NewApp()
	app.Name = "swapcli"
	app.Usage = "a frontend for swapd, the Grin/Bitcoin atomic swap daemon"
	app.Commands = []cli.Command{
		genParamsCommand,
		decodeCommand,
		redeemCommand,
		refundCommand,
		recoverCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
