package contract

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotteryABI_Methods(t *testing.T) {
	t.Parallel()

	parsed, err := abi.JSON(strings.NewReader(LotteryABI))
	require.NoError(t, err)

	signatures := map[string]string{
		"getBalance":     "getBalance()",
		"getPlayers":     "getPlayers()",
		"lotteryId":      "lotteryId()",
		"lotteryHistory": "lotteryHistory(uint256)",
		"enter":          "enter()",
		"pickWinner":     "pickWinner()",
		"payWinner":      "payWinner()",
	}
	for name, sig := range signatures {
		method, ok := parsed.Methods[name]
		require.True(t, ok, name)
		assert.Equal(t, sig, method.Sig)
		assert.Equal(t, crypto.Keccak256([]byte(sig))[:4], method.ID, name)
	}

	assert.True(t, parsed.Methods["enter"].IsPayable())
	assert.False(t, parsed.Methods["pickWinner"].IsPayable())
	assert.True(t, parsed.Methods["getPlayers"].IsConstant())
}

func TestLotteryABI_PackHistoryCall(t *testing.T) {
	t.Parallel()

	parsed, err := abi.JSON(strings.NewReader(LotteryABI))
	require.NoError(t, err)

	input, err := parsed.Pack("lotteryHistory", big.NewInt(3))
	require.NoError(t, err)
	require.Len(t, input, 4+32)
	assert.Equal(t, byte(3), input[len(input)-1])
}
