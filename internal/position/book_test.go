package position

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/model"
	"tradedesk/pkg/errors"
	"tradedesk/pkg/errors/ecode"
)

func testSignal(id string, side model.SignalSide) model.Signal {
	return model.Signal{
		ID:       id,
		Ticker:   "AAPL",
		Strategy: "channel-breakout",
		Side:     side,
		MaxRisk:  500,
		State:    model.SignalExecuted,
	}
}

func TestBook_PnlLong(t *testing.T) {
	b := NewBook()
	pos, err := b.Open(testSignal("s1", model.Buy), 10, 100)
	require.NoError(t, err)
	assert.Equal(t, 10.0, pos.Quantity)

	b.UpdateMarkPrice("AAPL", 110)
	got, err := b.Get(pos.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.Pnl)
	assert.Equal(t, 10.0, got.PnlPercent)
}

func TestBook_PnlShort(t *testing.T) {
	b := NewBook()
	pos, err := b.Open(testSignal("s1", model.Sell), 10, 100)
	require.NoError(t, err)
	// 空头数量带负号
	assert.Equal(t, -10.0, pos.Quantity)

	b.UpdateMarkPrice("AAPL", 110)
	got, err := b.Get(pos.ID)
	require.NoError(t, err)
	assert.Equal(t, -100.0, got.Pnl)
	assert.Equal(t, -10.0, got.PnlPercent)
}

func TestBook_PnlPercentZeroEntry(t *testing.T) {
	b := NewBook()
	pos, err := b.Open(testSignal("s1", model.Buy), 10, 0)
	require.NoError(t, err)

	b.UpdateMarkPrice("AAPL", 5)
	got, err := b.Get(pos.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.Pnl)
	// entry为0时百分比定义为0，不产生NaN
	assert.Equal(t, 0.0, got.PnlPercent)
}

func TestBook_DuplicateOpen(t *testing.T) {
	b := NewBook()
	_, err := b.Open(testSignal("s1", model.Buy), 10, 100)
	require.NoError(t, err)

	_, err = b.Open(testSignal("s1", model.Buy), 10, 100)
	assert.True(t, errors.IsCode(err, ecode.DuplicateOpenErr))
}

func TestBook_ConcurrentOpenSameSignal(t *testing.T) {
	b := NewBook()
	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = b.Open(testSignal("s1", model.Buy), 10, 100)
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, errors.IsCode(err, ecode.DuplicateOpenErr))
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, b.OpenPositions(), 1)
}

func TestBook_CloseFlow(t *testing.T) {
	b := NewBook()
	pos, err := b.Open(testSignal("s1", model.Buy), 10, 100)
	require.NoError(t, err)

	closed, err := b.Close(pos.ID, 105)
	require.NoError(t, err)
	assert.Equal(t, model.PositionClosed, closed.Status)
	assert.Equal(t, 105.0, closed.ExitPrice)
	assert.Equal(t, 50.0, closed.Pnl)
	require.NotNil(t, closed.ExitTime)

	_, err = b.Close(pos.ID, 105)
	assert.True(t, errors.IsCode(err, ecode.AlreadyClosedErr))

	_, err = b.Close("missing", 1)
	assert.True(t, errors.IsCode(err, ecode.NotFoundErr))

	// 平仓后同一信号可以重新开仓
	_, err = b.Open(testSignal("s1", model.Buy), 10, 100)
	assert.NoError(t, err)
}

func TestBook_UpdateMarkPriceScoping(t *testing.T) {
	b := NewBook()
	apple, _ := b.Open(testSignal("s1", model.Buy), 10, 100)

	msft := testSignal("s2", model.Buy)
	msft.Ticker = "MSFT"
	other, _ := b.Open(msft, 10, 200)

	// 无关ticker是无操作
	b.UpdateMarkPrice("TSLA", 999)

	b.UpdateMarkPrice("AAPL", 110)
	gotApple, _ := b.Get(apple.ID)
	gotOther, _ := b.Get(other.ID)
	assert.Equal(t, 110.0, gotApple.CurrentPrice)
	assert.Equal(t, 200.0, gotOther.CurrentPrice)

	// 已平仓位不再刷新
	_, err := b.Close(apple.ID, 110)
	require.NoError(t, err)
	b.UpdateMarkPrice("AAPL", 120)
	gotApple, _ = b.Get(apple.ID)
	assert.Equal(t, 110.0, gotApple.CurrentPrice)
}

func TestBook_Snapshots(t *testing.T) {
	b := NewBook()
	p1, _ := b.Open(testSignal("s1", model.Buy), 10, 100)
	_, _ = b.Open(testSignal("s2", model.Sell), 5, 50)
	_, err := b.Close(p1.ID, 105)
	require.NoError(t, err)

	assert.Len(t, b.OpenPositions(), 1)
	assert.Len(t, b.Closed(), 1)
	assert.Len(t, b.All(), 2)

	// 快照不是实时视图
	snap := b.OpenPositions()
	b.UpdateMarkPrice("AAPL", 60)
	assert.NotEqual(t, 60.0, snap[0].CurrentPrice)
}

func TestBook_OpenZeroQuantity(t *testing.T) {
	b := NewBook()
	_, err := b.Open(testSignal("s1", model.Buy), 0, 100)
	assert.True(t, errors.IsCode(err, ecode.ValidateErr))
}
