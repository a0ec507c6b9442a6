package utils

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"

	"github.com/DrDelphi/LotteryBot/data"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

func GetHTTP(ctx context.Context, address string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, err
	}
	client := http.DefaultClient
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("GET %s: %s", address, resp.Status)
	}

	return body, nil
}

func FormatTgUser(user *tgbotapi.User) string {
	name := fmt.Sprintf("%s %s [%v]", user.FirstName, user.LastName, user.ID)
	name = strings.TrimSpace(name)
	name = strings.Replace(name, "  ", " ", 1)
	if user.UserName != "" {
		name = fmt.Sprintf("@%s (%s)", user.UserName, name)
	}

	return name
}

func FormatDbTgUser(user *data.Telegram) string {
	if user.UserName != "" {
		return "@" + user.UserName
	}

	name := fmt.Sprintf("%s %s", user.FirstName, user.LastName)
	name = strings.TrimSpace(name)
	name = strings.Replace(name, "  ", " ", 1)
	name = fmt.Sprintf("[%s](tg://user?id=%v)", name, user.ID)

	return name
}

// ToDecimal - base units to a decimal amount of the standard unit
func ToDecimal(amount *big.Int, decimals int32) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(amount, -decimals)
}

// ToBaseUnits - parses a decimal amount of the standard unit into base units
func ToBaseUnits(amount string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid amount %q", amount)
	}
	if d.IsNegative() {
		return nil, errors.Errorf("negative amount %q", amount)
	}

	shifted := d.Shift(decimals)
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, errors.Errorf("amount %q has more than %d decimals", amount, decimals)
	}

	return shifted.BigInt(), nil
}

// NicePrice - amount with thousands separators and at most maxDecimals
// decimals, trailing zeros removed
func NicePrice(amount *big.Int, decimals int32, maxDecimals int32) string {
	d := ToDecimal(amount, decimals).Truncate(maxDecimals)
	s := d.String()

	intPart, fracPart := s, ""
	if idx := strings.Index(s, "."); idx >= 0 {
		intPart, fracPart = s[:idx], s[idx:]
	}
	for idx := len(intPart) - 3; idx > 0; idx -= 3 {
		intPart = intPart[:idx] + "," + intPart[idx:]
	}

	return intPart + fracPart
}

func ShortenAddress(address string) string {
	l := len(address)
	if l < 14 {
		return address
	}

	return address[:8] + "..." + address[l-6:]
}

// AccountLink - markdown link of an address to the explorer
func AccountLink(explorer, address string) string {
	if explorer == "" {
		return "`" + address + "`"
	}

	return fmt.Sprintf("[%s](%s%s)", ShortenAddress(address), explorer, address)
}

// TransactionLink - markdown link of a transaction hash to the explorer
func TransactionLink(explorer, hash string) string {
	if explorer == "" {
		return "`" + hash + "`"
	}

	return fmt.Sprintf("[%s](%s%s)", ShortenAddress(hash), explorer, hash)
}
