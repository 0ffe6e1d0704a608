package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/wire"

	"github.com/grinswap/atomicswap/grin"
	"github.com/grinswap/atomicswap/keypair"
	"github.com/grinswap/atomicswap/setup"
	"github.com/grinswap/atomicswap/swap"
)

// runFunder drives the Funder side of the ceremony to completion,
// framing M0/M1 onto w, reading M2 from stdin, framing M3, reading M4,
// framing M5, then waits for a driver command to either redeem the
// Bitcoin leg or refund the Grin leg.
func runFunder(rand io.Reader, params setup.Parameters, scanner *bufio.Scanner, w io.Writer) error {
	state0, msg0, msg1, err := swap.NewFunder(rand, params)
	if err != nil {
		return err
	}
	if err := writeMessage(w, &msg0); err != nil {
		return err
	}
	if err := writeMessage(w, &msg1); err != nil {
		return err
	}

	var msg2 swap.Message2
	if err := readMessage(scanner, &msg2); err != nil {
		return fmt.Errorf("swapd: reading M2: %w", err)
	}
	state1, msg3, err := state0.ReceivePubkeys(rand, msg2)
	if err != nil {
		return err
	}
	if err := writeMessage(w, &msg3); err != nil {
		return err
	}

	var msg4 swap.Message4
	if err := readMessage(scanner, &msg4); err != nil {
		return fmt.Errorf("swapd: reading M4: %w", err)
	}
	state2, err := state1.ReceiveRefundSig(msg4)
	if err != nil {
		return err
	}

	// The Grin leg's solo excess/secret belong to the funder's existing
	// wallet-held inputs, out of this daemon's scope; swapd stands in
	// for that wallet call by sampling a fresh keypair, the same
	// boundary the swap package's own tests model with soloKP.
	solo, err := keypair.Generate(rand)
	if err != nil {
		return err
	}
	state3, kernel, err := state2.FundGrin(rand, solo.Public, solo.Secret)
	if err != nil {
		return err
	}
	printKernel(w, "FUND_GRIN", kernel)

	state4, msg5, err := state3.EncryptRedeem()
	if err != nil {
		return err
	}
	if err := writeMessage(w, &msg5); err != nil {
		return err
	}

	// Whether to redeem now or wait for the refund window depends on
	// chain state this daemon does not track; the driver issues the
	// command once it has observed the Bitcoin fund transaction
	// confirm (to redeem) or the refund locktime elapse (to refund).
	return waitForCommand(scanner, map[string]func() error{
		"REDEEM": func() error {
			action, err := state4.RedeemBitcoin(rand)
			if err != nil {
				return err
			}
			return printTx(w, "REDEEM_BTC", action.Tx)
		},
		"REFUND": func() error {
			printKernel(w, "REFUND_GRIN", state4.RefundGrin())
			return nil
		},
	})
}

// runRedeemer drives the Redeemer side of the ceremony to completion,
// reading M1 from stdin (M0's params are supplied out-of-band via
// --params, mirroring the funder's own local copy), framing M2, reading
// M3, framing M4, reading M5, then waits for a driver command.
func runRedeemer(rand io.Reader, params setup.Parameters, scanner *bufio.Scanner, w io.Writer) error {
	state0, err := swap.NewRedeemer(rand, params)
	if err != nil {
		return err
	}

	var msg1 swap.Message1
	if err := readMessage(scanner, &msg1); err != nil {
		return fmt.Errorf("swapd: reading M1: %w", err)
	}
	state1, msg2, err := state0.ReceiveCommitment(msg1)
	if err != nil {
		return err
	}
	if err := writeMessage(w, &msg2); err != nil {
		return err
	}

	var msg3 swap.Message3
	if err := readMessage(scanner, &msg3); err != nil {
		return fmt.Errorf("swapd: reading M3: %w", err)
	}
	state2, fundAction, msg4, err := state1.ReceiveOpen(rand, msg3)
	if err != nil {
		return err
	}
	if err := printTx(w, "FUND_BTC", fundAction.Tx); err != nil {
		return err
	}
	if pkt, err := fundAction.ExportPSBT(); err == nil {
		if err := printPSBT(w, pkt); err != nil {
			return err
		}
	}
	if err := writeMessage(w, &msg4); err != nil {
		return err
	}

	var msg5 swap.Message5
	if err := readMessage(scanner, &msg5); err != nil {
		return fmt.Errorf("swapd: reading M5: %w", err)
	}
	state3, err := state2.ReceiveEncryptedRedeem(msg5)
	if err != nil {
		return err
	}

	// The redeemer learns y only by observing the funder's own Bitcoin
	// redeem transaction on-chain; the driver hands it over once seen.
	return waitForCommand(scanner, map[string]func() error{
		"RECOVER": func() error {
			if !scanner.Scan() {
				return io.ErrUnexpectedEOF
			}
			raw, err := hex.DecodeString(scanner.Text())
			if err != nil {
				return fmt.Errorf("swapd: malformed RECOVER frame: %w", err)
			}
			var tx wire.MsgTx
			if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
				return err
			}

			y, err := state3.RecoverSecret(&tx)
			if err != nil {
				return err
			}
			printKernel(w, "REDEEM_GRIN", state3.RedeemGrin(y))
			return nil
		},
		"REFUND": func() error {
			action, err := state3.RefundBitcoin(rand)
			if err != nil {
				return err
			}
			return printTx(w, "REFUND_BTC", action.Tx)
		},
	})
}

// waitForCommand blocks for a single command line and dispatches it,
// the terminal step of either role once both legs are funded.
func waitForCommand(scanner *bufio.Scanner, commands map[string]func() error) error {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return err
		}
		return io.ErrUnexpectedEOF
	}
	cmd := scanner.Text()
	fn, ok := commands[cmd]
	if !ok {
		return fmt.Errorf("swapd: unrecognized command %q", cmd)
	}
	return fn()
}

func printKernel(w io.Writer, tag string, k grin.Kernel) error {
	excess := k.Excess.SerializeCompressed()
	r := k.Signature.R.SerializeCompressed()
	s := k.Signature.S.Bytes()
	_, err := fmt.Fprintf(w, "%s excess=%s r=%s s=%s fee=%d lockheight=%d\n",
		tag, hex.EncodeToString(excess[:]), hex.EncodeToString(r[:]), hex.EncodeToString(s[:]),
		k.Fee, k.LockHeight)
	return err
}

func printTx(w io.Writer, tag string, tx *wire.MsgTx) error {
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s\n", tag, hex.EncodeToString(buf.Bytes()))
	return err
}

// printPSBT emits the fund transaction as a base64 PSBT, handed to an
// external wallet to attach its own input witnesses. Best-effort: a
// funder that signs its inputs some other way simply never reads this
// line.
func printPSBT(w io.Writer, pkt *psbt.Packet) error {
	b64, err := pkt.B64Encode()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "FUND_PSBT %s\n", b64)
	return err
}
