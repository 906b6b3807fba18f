package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/hnslite/hnslite/core"
	"github.com/hnslite/hnslite/core/types"
)

// importHeaders feeds a dump of hex-encoded headers, one per line, through
// the acceptance pipeline. Rejects are logged and skipped; a corrupt line
// aborts the import.
func importHeaders(chain *core.HeaderChain, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		start    = time.Now()
		imported int
		orphaned int
		rejected int
		line     int
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		data, err := hex.DecodeString(text)
		if err != nil {
			return fmt.Errorf("line %d: %v", line, err)
		}
		hdr, err := types.DecodeHeader(data)
		if err != nil {
			return fmt.Errorf("line %d: %v", line, err)
		}
		status, err := chain.Add(hdr)
		switch {
		case errors.Is(err, core.ErrDuplicate), errors.Is(err, core.ErrDuplicateOrphan):
			// Re-imports of the same dump are fine.
		case err != nil:
			rejected++
			log.Warn("Rejected imported header", "line", line, "hash", hdr.Hash(), "err", err)
		case status == core.OrphanStatTy:
			orphaned++
		default:
			imported++
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	log.Info("Imported block headers",
		"count", imported, "orphans", orphaned, "rejected", rejected,
		"height", chain.Height(), "elapsed", common.PrettyDuration(time.Since(start)))
	return nil
}
