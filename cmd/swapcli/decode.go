package main

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	"github.com/grinswap/atomicswap/swap"
)

var decodeCommand = cli.Command{
	Name:      "decode",
	Usage:     "pretty-print one of swapd's framed ceremony messages",
	ArgsUsage: "<hex-frame>",
	Flags: []cli.Flag{
		cli.IntFlag{Name: "msg", Usage: "message number 0-5, required"},
	},
	Action: decode,
}

func decode(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("swapcli: decode takes exactly one hex-frame argument")
	}
	if !ctx.IsSet("msg") {
		return fmt.Errorf("swapcli: --msg is required")
	}
	raw, err := hex.DecodeString(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("swapcli: malformed frame: %w", err)
	}

	var msg swap.Message
	switch ctx.Int("msg") {
	case 0:
		msg = &swap.Message0{}
	case 1:
		msg = &swap.Message1{}
	case 2:
		msg = &swap.Message2{}
	case 3:
		msg = &swap.Message3{}
	case 4:
		msg = &swap.Message4{}
	case 5:
		msg = &swap.Message5{}
	default:
		return fmt.Errorf("swapcli: --msg must be 0-5")
	}

	if err := msg.Decode(bytes.NewReader(raw)); err != nil {
		return err
	}
	fmt.Printf("%+v\n", msg)
	return nil
}
