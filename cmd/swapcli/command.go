package main

import (
	"fmt"

	"github.com/urfave/cli"
)

// redeemCommand and refundCommand emit the bare command line swapd's
// stdin protocol expects once both legs are funded, left as separate
// subcommands rather than one --action flag since each maps to a
// distinct chain-observation precondition a driver script checks first
// (fund confirmation depth for redeem, locktime elapse for refund).
var redeemCommand = cli.Command{
	Name:  "redeem",
	Usage: "emit the command telling a running swapd to redeem its counterparty leg",
	Action: func(ctx *cli.Context) error {
		fmt.Println("REDEEM")
		return nil
	},
}

var refundCommand = cli.Command{
	Name:  "refund",
	Usage: "emit the command telling a running swapd to refund its own leg",
	Action: func(ctx *cli.Context) error {
		fmt.Println("REFUND")
		return nil
	},
}

var recoverCommand = cli.Command{
	Name:      "recover",
	Usage:     "emit the command handing a redeemer swapd the funder's observed Bitcoin redeem transaction",
	ArgsUsage: "<raw-tx-hex>",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return fmt.Errorf("swapcli: recover takes exactly one raw-tx-hex argument")
		}
		fmt.Println("RECOVER")
		fmt.Println(ctx.Args().First())
		return nil
	},
}
