package testutil

import (
	"time"

	"github.com/google/uuid"
)

// Fixed identifiers for deterministic tests.
var (
	TestClaimID1 = uuid.MustParse("00000000-0000-0000-0000-0000000000c1")
	TestClaimID2 = uuid.MustParse("00000000-0000-0000-0000-0000000000c2")
)

const (
	TestFarmerID      = "0x9f2b7c1e4d3a5b6c7d8e9f0a1b2c3d4e5f6a7b8c"
	TestOtherFarmerID = "0x1111111111111111111111111111111111111111"
)

// Date returns midnight UTC for y-m-d.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
