package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/grinswap/atomicswap/swap"
)

// writeMessage frames a single ceremony message as one hex-encoded line
// on w, the stdout side of the stdin/stdout transport. Framing/transport
// of the six messages is explicitly left to the caller by the core
// state machine; this is swapd's own choice of a minimal line protocol,
// analogous to lncli/lnd talking newline-delimited JSON over a pipe in
// --no-macaroons test harnesses.
func writeMessage(w io.Writer, msg swap.Message) error {
	var buf bytes.Buffer
	if err := msg.Encode(&buf); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, hex.EncodeToString(buf.Bytes()))
	return err
}

// readMessage blocks for the next line on scanner and decodes it into
// msg in place.
func readMessage(scanner *bufio.Scanner, msg swap.Message) error {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return err
		}
		return io.ErrUnexpectedEOF
	}

	raw, err := hex.DecodeString(scanner.Text())
	if err != nil {
		return fmt.Errorf("swapd: malformed frame: %w", err)
	}
	return msg.Decode(bytes.NewReader(raw))
}
