package deriverse

import (
	"encoding/base64"
	"testing"
	"time"

	"deriverse-trade-lab/internal/domain"
)

var blockTime = time.Date(2025, 4, 10, 14, 30, 0, 0, time.UTC)

const testSig = "5KtP3xyzabcdefghij1234567890"

func dataLog(payload []byte) string {
	return programDataPrefix + base64.StdEncoding.EncodeToString(payload)
}

func TestInvokesProgram(t *testing.T) {
	logs := []string{
		"Program 11111111111111111111111111111111 invoke [1]",
		"Program " + ProgramID + " invoke [1]",
		"Program " + ProgramID + " success",
	}
	if !InvokesProgram(logs) {
		t.Error("expected program invocation to be detected")
	}
	if InvokesProgram([]string{"Program " + ProgramID + " success"}) {
		t.Error("success line alone must not count as invocation")
	}
	if InvokesProgram(nil) {
		t.Error("empty logs must not match")
	}
}

func TestParseTransaction_FeeBeforeFill(t *testing.T) {
	logs := []string{
		"Program " + ProgramID + " invoke [1]",
		dataLog(feesPayload(TagPerpFees, 450_000_000, 50_000_000)),
		dataLog(fillPayload(TagPerpFill, 42, 0, 2_000_000_000, 150_000_000_000, 12_000_000_000)),
	}

	parsed := ParseTransaction(testSig, blockTime, logs)

	if len(parsed.Trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(parsed.Trades))
	}
	trade := parsed.Trades[0]

	if trade.ID != testSig[:16]+"-pf-42" {
		t.Errorf("trade id wrong: %s", trade.ID)
	}
	if trade.Symbol != "SOL-PERP" || trade.MarketType != domain.MarketPerp {
		t.Errorf("symbol/market wrong: %s %s", trade.Symbol, trade.MarketType)
	}
	if trade.Side != domain.SideLong {
		t.Errorf("side wrong: %s", trade.Side)
	}
	if trade.Size != 2 || trade.EntryPrice != 150 {
		t.Errorf("size/price wrong: %f %f", trade.Size, trade.EntryPrice)
	}
	if trade.Pnl != 12 {
		t.Errorf("pnl wrong: %f", trade.Pnl)
	}
	// pnlPercent = 12 / (150*2) * 100 = 4
	if trade.PnlPercent != 4 {
		t.Errorf("pnl percent wrong: %f", trade.PnlPercent)
	}
	// The fee report was consumed by the fill.
	if trade.Fees != 0.45 || trade.MakerRebate != 0.05 {
		t.Errorf("fee merge wrong: fees %f rebate %f", trade.Fees, trade.MakerRebate)
	}
	if trade.Status != domain.StatusClosed || trade.ExitTime == nil || !trade.ExitTime.Equal(blockTime) {
		t.Errorf("fill must be a closed round trip at block time")
	}

	// The fee report also lands as its own record.
	if len(parsed.FeeRecords) != 1 {
		t.Fatalf("expected 1 fee record, got %d", len(parsed.FeeRecords))
	}
	fee := parsed.FeeRecords[0]
	if fee.Type != domain.FeeTaker || fee.Amount != 0.45 || fee.Symbol != "PERP" {
		t.Errorf("fee record wrong: %+v", fee)
	}
}

func TestParseTransaction_FillWithoutFee(t *testing.T) {
	logs := []string{
		dataLog(fillPayload(TagSpotFill, 7, 1, -3_000_000_000, 100_000_000_000, -5_000_000_000)),
	}

	parsed := ParseTransaction(testSig, blockTime, logs)

	if len(parsed.Trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(parsed.Trades))
	}
	trade := parsed.Trades[0]
	if trade.Fees != 0 || trade.MakerRebate != 0 {
		t.Errorf("fill without fee report must carry zero fees: %f %f", trade.Fees, trade.MakerRebate)
	}
	if trade.Side != domain.SideShort {
		t.Errorf("side 1 must map to short")
	}
	if trade.Size != 3 {
		t.Errorf("size must be absolute: %f", trade.Size)
	}
	if trade.Symbol != "SOL/USDC" || trade.MarketType != domain.MarketSpot {
		t.Errorf("spot mapping wrong: %s %s", trade.Symbol, trade.MarketType)
	}
	if trade.Pnl != -5 {
		t.Errorf("pnl wrong: %f", trade.Pnl)
	}
}

func TestParseTransaction_TwoFillsOneFee(t *testing.T) {
	// The fee report pairs with the first fill only; the second gets zero.
	logs := []string{
		dataLog(feesPayload(TagPerpFees, 300_000_000, 0)),
		dataLog(fillPayload(TagPerpFill, 1, 0, 1_000_000_000, 100_000_000_000, 0)),
		dataLog(fillPayload(TagPerpFill, 2, 0, 1_000_000_000, 100_000_000_000, 0)),
	}

	parsed := ParseTransaction(testSig, blockTime, logs)

	if len(parsed.Trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(parsed.Trades))
	}
	if parsed.Trades[0].Fees != 0.3 {
		t.Errorf("first fill must consume the fee: %f", parsed.Trades[0].Fees)
	}
	if parsed.Trades[1].Fees != 0 {
		t.Errorf("second fill must not reuse a consumed fee: %f", parsed.Trades[1].Fees)
	}
}

func TestParseTransaction_RebateFeeRecord(t *testing.T) {
	logs := []string{
		dataLog(feesPayload(TagSpotFees, -150_000_000, 0)),
	}

	parsed := ParseTransaction(testSig, blockTime, logs)

	if len(parsed.FeeRecords) != 1 {
		t.Fatalf("expected 1 fee record, got %d", len(parsed.FeeRecords))
	}
	fee := parsed.FeeRecords[0]
	if fee.Type != domain.FeeMakerRebate {
		t.Errorf("negative fees must record a maker rebate, got %s", fee.Type)
	}
	if fee.Amount != -0.15 {
		t.Errorf("amount keeps its sign: %f", fee.Amount)
	}
	if fee.Symbol != "SPOT" {
		t.Errorf("spot fee scope wrong: %s", fee.Symbol)
	}
}

func TestParseTransaction_Funding(t *testing.T) {
	settleTime := int64(1_744_300_000)
	logs := []string{
		dataLog(fundingPayload(2, settleTime, -750_000_000)),
	}

	parsed := ParseTransaction(testSig, blockTime, logs)

	if len(parsed.FundingPayments) != 1 {
		t.Fatalf("expected 1 funding payment, got %d", len(parsed.FundingPayments))
	}
	p := parsed.FundingPayments[0]
	if p.Symbol != "ETH-PERP" {
		t.Errorf("funding symbol wrong: %s", p.Symbol)
	}
	if p.Amount != -0.75 {
		t.Errorf("funding amount wrong: %f", p.Amount)
	}
	// Funding stamps the settlement time from the event, not the block time.
	if !p.Timestamp.Equal(time.Unix(settleTime, 0).UTC()) {
		t.Errorf("funding timestamp wrong: %v", p.Timestamp)
	}
}

func TestParseTransaction_SkipsNoise(t *testing.T) {
	logs := []string{
		"Program log: Instruction: PlaceOrder",
		dataLog([]byte{77, 1, 2, 3}), // unknown tag
		programDataPrefix + "!!!not-base64!!!",
		"Program " + ProgramID + " consumed 12345 compute units",
	}

	parsed := ParseTransaction(testSig, blockTime, logs)

	if len(parsed.Trades) != 0 || len(parsed.FeeRecords) != 0 || len(parsed.FundingPayments) != 0 {
		t.Errorf("noise must decode to nothing: %+v", parsed)
	}
}

func TestParseTransaction_FeeDoesNotCrossTransactions(t *testing.T) {
	// A fee-only transaction leaves nothing pending for the next call.
	ParseTransaction(testSig, blockTime, []string{
		dataLog(feesPayload(TagPerpFees, 999_000_000, 0)),
	})

	parsed := ParseTransaction("otherSignature123", blockTime, []string{
		dataLog(fillPayload(TagPerpFill, 5, 0, 1_000_000_000, 100_000_000_000, 0)),
	})

	if parsed.Trades[0].Fees != 0 {
		t.Errorf("fee carry must not cross transactions: %f", parsed.Trades[0].Fees)
	}
}
