// Package ledger derives the tamper-evidence hash anchored for each fraud
// report.
package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
)

// KeccakHasher implements port.ReportHasher. The hash covers the JSON form of
// the report with LedgerHash cleared, so a stored report can be rechecked
// against its own hash.
type KeccakHasher struct{}

func NewKeccakHasher() KeccakHasher { return KeccakHasher{} }

func (KeccakHasher) Hash(report model.FraudReport) (string, error) {
	report.LedgerHash = ""
	report.AnalysisTimestamp = report.AnalysisTimestamp.UTC()
	payload, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode report for hashing: %w", err)
	}
	return hexutil.Encode(crypto.Keccak256(payload)), nil
}

// Verify reports whether report carries the hash of its own contents.
func (h KeccakHasher) Verify(report model.FraudReport) (bool, error) {
	want, err := h.Hash(report)
	if err != nil {
		return false, err
	}
	return report.LedgerHash == want, nil
}
