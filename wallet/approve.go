package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/DrDelphi/LotteryBot/lottery"
	"github.com/manifoldco/promptui"
	"github.com/shopspring/decimal"
)

var errDenied = errors.New("user denied transaction signature")

// TxRequest - a transaction waiting for the user's signature
type TxRequest struct {
	From   string
	To     string
	Method string
	Value  *big.Int
}

// Approver - asks the user to sign a transaction
type Approver interface {
	Approve(ctx context.Context, req TxRequest) error
}

// AutoApprove signs everything. Used where pressing the button already is the
// user's consent.
type AutoApprove struct{}

func (AutoApprove) Approve(context.Context, TxRequest) error {
	return nil
}

// PromptApprover asks for confirmation on the terminal
type PromptApprover struct {
	Decimals int32
	Symbol   string
}

func (p PromptApprover) Approve(ctx context.Context, req TxRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	label := fmt.Sprintf("Sign %s() on %s from %s", req.Method, req.To, req.From)
	if req.Value != nil && req.Value.Sign() > 0 {
		label += fmt.Sprintf(" sending %s %s", decimal.NewFromBigInt(req.Value, -p.Decimals).String(), p.Symbol)
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		log.Debug("signature prompt declined", "method", req.Method, "error", err)
		return lottery.Classify(lottery.ErrUserRejected, errDenied)
	}

	return nil
}
