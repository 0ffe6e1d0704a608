package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/grinswap/atomicswap/setup"
)

// paramsFile is the JSON-friendly, wallet-boundary-facing counterpart of
// setup.Parameters: addresses and outpoints as strings, the way lncli's
// JSON request/response types stand in for the richer in-process types
// (lncli/cli.go uses the same string-address convention talking to
// lnrpc). Resolving wallet inputs (UTXO selection, address generation)
// itself stays out of scope; this struct is the hand-off point where an
// external wallet's output is expected to already be filled in.
type paramsFile struct {
	Alpha struct {
		Amount       uint64 `json:"amount"`
		Fee          uint64 `json:"fee"`
		ExpiryHeight uint64 `json:"expiryHeight"`
	} `json:"alpha"`

	Beta struct {
		Asset      uint64          `json:"asset"`
		Fee        uint64          `json:"fee"`
		Expiry     uint32          `json:"expiry"`
		Inputs     []paramsInput   `json:"inputs"`
		ChangeAddr string          `json:"changeAddr"`
		RefundAddr string          `json:"refundAddr"`
		RedeemAddr string          `json:"redeemAddr"`
	} `json:"beta"`
}

type paramsInput struct {
	Outpoint string `json:"outpoint"` // "<txid>:<vout>"
	Amount   uint64 `json:"amount"`
}

// loadParamsFile reads and resolves a paramsFile into setup.Parameters
// against the given network, mirroring lnd's loadConfig pattern of
// decoding string-typed config fields into their richer runtime types
// once, at startup.
func loadParamsFile(path string, net *chaincfg.Params) (setup.Parameters, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return setup.Parameters{}, err
	}

	var pf paramsFile
	if err := json.Unmarshal(raw, &pf); err != nil {
		return setup.Parameters{}, fmt.Errorf("swapd: parsing params file: %w", err)
	}

	inputs := make([]setup.OutPointAmount, len(pf.Beta.Inputs))
	for i, in := range pf.Beta.Inputs {
		op, err := parseOutpoint(in.Outpoint)
		if err != nil {
			return setup.Parameters{}, fmt.Errorf("swapd: input %d: %w", i, err)
		}
		inputs[i] = setup.OutPointAmount{OutPoint: op, Amount: in.Amount}
	}

	changeAddr, err := btcutil.DecodeAddress(pf.Beta.ChangeAddr, net)
	if err != nil {
		return setup.Parameters{}, fmt.Errorf("swapd: changeAddr: %w", err)
	}
	refundAddr, err := btcutil.DecodeAddress(pf.Beta.RefundAddr, net)
	if err != nil {
		return setup.Parameters{}, fmt.Errorf("swapd: refundAddr: %w", err)
	}
	redeemAddr, err := btcutil.DecodeAddress(pf.Beta.RedeemAddr, net)
	if err != nil {
		return setup.Parameters{}, fmt.Errorf("swapd: redeemAddr: %w", err)
	}

	beta, err := setup.NewBitcoinParams(
		pf.Beta.Asset, pf.Beta.Fee, pf.Beta.Expiry,
		inputs, changeAddr, refundAddr, redeemAddr,
	)
	if err != nil {
		return setup.Parameters{}, err
	}

	alpha := setup.GrinParams{
		Amount:       pf.Alpha.Amount,
		Fee:          pf.Alpha.Fee,
		ExpiryHeight: pf.Alpha.ExpiryHeight,
	}

	return setup.Parameters{Alpha: alpha, Beta: beta}, nil
}

func parseOutpoint(s string) (wire.OutPoint, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return wire.OutPoint{}, fmt.Errorf("outpoint %q: want <txid>:<vout>", s)
	}

	txidBytes, err := hex.DecodeString(parts[0])
	if err != nil {
		return wire.OutPoint{}, fmt.Errorf("outpoint %q: bad txid: %w", s, err)
	}
	var hash chainhash.Hash
	// Bitcoin txids are displayed big-endian; chainhash.Hash is stored
	// internally reversed, the same convention chainhash.NewHash follows
	// for strings from RPC/CLI input.
	for i, b := range txidBytes {
		hash[len(txidBytes)-1-i] = b
	}

	vout, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return wire.OutPoint{}, fmt.Errorf("outpoint %q: bad vout: %w", s, err)
	}

	return wire.OutPoint{Hash: hash, Index: uint32(vout)}, nil
}
