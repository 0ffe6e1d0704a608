package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli"
)

// jsonInput mirrors the beta.inputs entry shape swapd's params.go
// expects, kept duplicated rather than shared since main packages can't
// import one another.
type jsonInput struct {
	Outpoint string `json:"outpoint"`
	Amount   uint64 `json:"amount"`
}

type jsonParams struct {
	Alpha struct {
		Amount       uint64 `json:"amount"`
		Fee          uint64 `json:"fee"`
		ExpiryHeight uint64 `json:"expiryHeight"`
	} `json:"alpha"`
	Beta struct {
		Asset      uint64      `json:"asset"`
		Fee        uint64      `json:"fee"`
		Expiry     uint32      `json:"expiry"`
		Inputs     []jsonInput `json:"inputs"`
		ChangeAddr string      `json:"changeAddr"`
		RefundAddr string      `json:"refundAddr"`
		RedeemAddr string      `json:"redeemAddr"`
	} `json:"beta"`
}

var genParamsCommand = cli.Command{
	Name:      "genparams",
	Usage:     "render a swap's setup parameters into the JSON file swapd expects",
	ArgsUsage: "",
	Flags: []cli.Flag{
		cli.Uint64Flag{Name: "alpha.amount", Usage: "grin amount, in nanogrin, being swapped"},
		cli.Uint64Flag{Name: "alpha.fee", Usage: "grin kernel fee, in nanogrin"},
		cli.Uint64Flag{Name: "alpha.expiryheight", Usage: "grin refund expiry height"},
		cli.Uint64Flag{Name: "beta.asset", Usage: "bitcoin amount, in satoshis, being swapped"},
		cli.Uint64Flag{Name: "beta.fee", Usage: "bitcoin fee, in satoshis, charged per spend of the fund output"},
		cli.Uint64Flag{Name: "beta.expiry", Usage: "bitcoin refund nLockTime, as a unix timestamp"},
		cli.StringSliceFlag{Name: "beta.input", Usage: "a funding input as <txid>:<vout>:<amount>, repeatable"},
		cli.StringFlag{Name: "beta.changeaddr", Usage: "bitcoin change address"},
		cli.StringFlag{Name: "beta.refundaddr", Usage: "bitcoin refund address"},
		cli.StringFlag{Name: "beta.redeemaddr", Usage: "bitcoin redeem address"},
		cli.StringFlag{Name: "out", Usage: "write the JSON to this path instead of stdout"},
	},
	Action: genParams,
}

func genParams(ctx *cli.Context) error {
	var p jsonParams
	p.Alpha.Amount = ctx.Uint64("alpha.amount")
	p.Alpha.Fee = ctx.Uint64("alpha.fee")
	p.Alpha.ExpiryHeight = ctx.Uint64("alpha.expiryheight")
	p.Beta.Asset = ctx.Uint64("beta.asset")
	p.Beta.Fee = ctx.Uint64("beta.fee")
	p.Beta.Expiry = uint32(ctx.Uint64("beta.expiry"))
	p.Beta.ChangeAddr = ctx.String("beta.changeaddr")
	p.Beta.RefundAddr = ctx.String("beta.refundaddr")
	p.Beta.RedeemAddr = ctx.String("beta.redeemaddr")

	for _, raw := range ctx.StringSlice("beta.input") {
		parts := strings.SplitN(raw, ":", 3)
		if len(parts) != 3 {
			return fmt.Errorf("swapcli: --beta.input %q: want <txid>:<vout>:<amount>", raw)
		}
		amount, err := strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			return fmt.Errorf("swapcli: --beta.input %q: bad amount: %w", raw, err)
		}
		p.Beta.Inputs = append(p.Beta.Inputs, jsonInput{
			Outpoint: parts[0] + ":" + parts[1],
			Amount:   amount,
		})
	}

	out, err := json.MarshalIndent(&p, "", "  ")
	if err != nil {
		return err
	}

	if path := ctx.String("out"); path != "" {
		return os.WriteFile(path, out, 0644)
	}
	fmt.Println(string(out))
	return nil
}
