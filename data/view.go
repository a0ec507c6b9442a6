package data

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// HistoryEntry - the winner of a closed lottery round
type HistoryEntry struct {
	ID     uint64
	Winner string
}

// LotteryView - display-only snapshot of the lottery contract state
type LotteryView struct {
	Pot       *big.Int
	Decimals  int32
	Players   []string
	LotteryID uint64
	History   []HistoryEntry
}

// PotString - the pot converted from the base unit to the standard unit
func (v *LotteryView) PotString() string {
	if v.Pot == nil {
		return "0"
	}

	return decimal.NewFromBigInt(v.Pot, -v.Decimals).String()
}

// DisplayHistory - history entries without the still running round
func (v *LotteryView) DisplayHistory() []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(v.History))
	for _, entry := range v.History {
		if entry.ID == v.LotteryID {
			continue
		}
		entries = append(entries, entry)
	}

	return entries
}

// Clone - deep copy of the view
func (v *LotteryView) Clone() *LotteryView {
	c := &LotteryView{
		Decimals:  v.Decimals,
		LotteryID: v.LotteryID,
		Players:   append([]string(nil), v.Players...),
		History:   append([]HistoryEntry(nil), v.History...),
	}
	if v.Pot != nil {
		c.Pot = new(big.Int).Set(v.Pot)
	}

	return c
}

// Feedback - outcome of the last user action
type Feedback struct {
	Error   string
	Success string
}
