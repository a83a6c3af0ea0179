package deriverse

import (
	"encoding/binary"
	"errors"
	"testing"
)

func putI64(buf []byte, offset int, v int64) {
	binary.LittleEndian.PutUint64(buf[offset:], uint64(v))
}

func fillPayload(tag byte, orderID uint64, side byte, qty, price, crncy int64) []byte {
	buf := make([]byte, fillPayloadLen)
	buf[0] = tag
	binary.LittleEndian.PutUint64(buf[1:], orderID)
	buf[9] = side
	putI64(buf, 10, qty)
	putI64(buf, 18, price)
	putI64(buf, 26, crncy)
	return buf
}

func feesPayload(tag byte, fees, refPayment int64) []byte {
	buf := make([]byte, feesPayloadLen)
	buf[0] = tag
	putI64(buf, 1, fees)
	putI64(buf, 9, refPayment)
	return buf
}

func fundingPayload(instrID uint32, ts, funding int64) []byte {
	buf := make([]byte, fundingPayloadLen)
	buf[0] = TagPerpFunding
	binary.LittleEndian.PutUint32(buf[1:], instrID)
	putI64(buf, 5, ts)
	putI64(buf, 13, funding)
	return buf
}

func TestDecode_SpotFill(t *testing.T) {
	payload := fillPayload(TagSpotFill, 42, 0, 2_500_000_000, 150_000_000_000, 12_000_000_000)

	event, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	fill, ok := event.(SpotFillEvent)
	if !ok {
		t.Fatalf("expected SpotFillEvent, got %T", event)
	}
	if fill.OrderID != 42 || fill.Side != 0 {
		t.Errorf("header fields wrong: %+v", fill)
	}
	if fill.Qty != 2_500_000_000 || fill.Price != 150_000_000_000 || fill.Crncy != 12_000_000_000 {
		t.Errorf("amounts wrong: %+v", fill)
	}
}

func TestDecode_PerpFillNegativeQty(t *testing.T) {
	// Short fills carry negative contract counts.
	payload := fillPayload(TagPerpFill, 7, 1, -1_000_000_000, 99_000_000_000, -3_000_000_000)

	event, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	fill, ok := event.(PerpFillEvent)
	if !ok {
		t.Fatalf("expected PerpFillEvent, got %T", event)
	}
	if fill.Perps != -1_000_000_000 {
		t.Errorf("negative qty must roundtrip, got %d", fill.Perps)
	}
	if fill.Crncy != -3_000_000_000 {
		t.Errorf("negative pnl must roundtrip, got %d", fill.Crncy)
	}
}

func TestDecode_Fees(t *testing.T) {
	event, err := Decode(feesPayload(TagSpotFees, 450_000_000, 0))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	fees, ok := event.(FeesEvent)
	if !ok {
		t.Fatalf("expected FeesEvent, got %T", event)
	}
	if fees.Perp {
		t.Error("tag 20 must decode as spot fees")
	}
	if fees.Fees != 450_000_000 {
		t.Errorf("fees wrong: %d", fees.Fees)
	}

	event, err = Decode(feesPayload(TagPerpFees, -200_000_000, 50_000_000))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	fees = event.(FeesEvent)
	if !fees.Perp {
		t.Error("tag 21 must decode as perp fees")
	}
	if fees.Fees != -200_000_000 || fees.RefPayment != 50_000_000 {
		t.Errorf("rebate fields wrong: %+v", fees)
	}
}

func TestDecode_Funding(t *testing.T) {
	event, err := Decode(fundingPayload(2, 1_700_000_000, -750_000_000))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	funding, ok := event.(FundingEvent)
	if !ok {
		t.Fatalf("expected FundingEvent, got %T", event)
	}
	if funding.InstrID != 2 || funding.Time != 1_700_000_000 || funding.Funding != -750_000_000 {
		t.Errorf("funding fields wrong: %+v", funding)
	}
}

func TestDecode_UnknownTag(t *testing.T) {
	_, err := Decode([]byte{99, 0, 0, 0})
	if !errors.Is(err, ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag, got %v", err)
	}
}

func TestDecode_ShortPayload(t *testing.T) {
	if _, err := Decode(nil); !errors.Is(err, ErrShortPayload) {
		t.Errorf("empty payload: expected ErrShortPayload, got %v", err)
	}
	if _, err := Decode([]byte{TagSpotFill, 1, 2}); !errors.Is(err, ErrShortPayload) {
		t.Errorf("truncated fill: expected ErrShortPayload, got %v", err)
	}
	if _, err := Decode([]byte{TagPerpFunding, 1}); !errors.Is(err, ErrShortPayload) {
		t.Errorf("truncated funding: expected ErrShortPayload, got %v", err)
	}
}

func TestResolveSymbol(t *testing.T) {
	cases := []struct {
		instrID uint32
		perp    bool
		want    string
	}{
		{0, false, "SOL/USDC"},
		{0, true, "SOL-PERP"},
		{1, true, "BTC-PERP"},
		{5, false, "TRUMP/USDC"},
		{99, false, "INSTR-99"},
		{99, true, "INSTR-99"},
	}
	for _, c := range cases {
		if got := ResolveSymbol(c.instrID, c.perp); got != c.want {
			t.Errorf("ResolveSymbol(%d, %v) = %q, want %q", c.instrID, c.perp, got, c.want)
		}
	}
}
