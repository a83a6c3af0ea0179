// Package deriverse decodes Deriverse exchange events from Solana
// transaction logs. The program emits "Program data:" log lines carrying
// base64 binary reports; this package turns them into typed events and maps
// event sequences onto trade, fee, and funding records.
package deriverse

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Log report tags emitted by the Deriverse program. Tags outside this set
// (order placement, cancels) carry no trade information and are skipped.
const (
	TagSpotFill    = 10
	TagPerpFill    = 11
	TagSpotFees    = 20
	TagPerpFees    = 21
	TagPerpFunding = 30
)

// decimalScale is the Deriverse fixed-point denominator: all quantities,
// prices, and currency amounts are integers scaled by 1e9.
const decimalScale = 1_000_000_000

// Decode errors.
var (
	ErrUnknownTag   = errors.New("unknown event tag")
	ErrShortPayload = errors.New("payload too short for event tag")
)

// Event is one decoded Deriverse log report. The variant set is closed:
// SpotFillEvent, PerpFillEvent, FeesEvent, FundingEvent.
type Event interface {
	eventTag() byte
}

// SpotFillEvent is a spot order fill report (tag 10).
type SpotFillEvent struct {
	OrderID uint64
	Side    byte  // 0 = long, 1 = short
	Qty     int64 // base units, 1e9 fixed-point, sign follows side
	Price   int64 // 1e9 fixed-point
	Crncy   int64 // realized pnl in quote units, 1e9 fixed-point
}

func (SpotFillEvent) eventTag() byte { return TagSpotFill }

// PerpFillEvent is a perpetual order fill report (tag 11).
type PerpFillEvent struct {
	OrderID uint64
	Side    byte
	Perps   int64 // contracts, 1e9 fixed-point
	Price   int64
	Crncy   int64
}

func (PerpFillEvent) eventTag() byte { return TagPerpFill }

// FeesEvent is a fee report for the fill that follows or precedes it in the
// same transaction (tags 20 and 21). Positive Fees is a taker fee, negative
// is a maker rebate.
type FeesEvent struct {
	Perp       bool // tag 21
	Fees       int64
	RefPayment int64
}

func (e FeesEvent) eventTag() byte {
	if e.Perp {
		return TagPerpFees
	}
	return TagSpotFees
}

// FundingEvent is a perpetual funding settlement report (tag 30).
type FundingEvent struct {
	InstrID uint32
	Time    int64 // unix seconds
	Funding int64 // signed, 1e9 fixed-point
}

func (FundingEvent) eventTag() byte { return TagPerpFunding }

// Payload sizes including the tag byte.
const (
	fillPayloadLen    = 1 + 8 + 1 + 8 + 8 + 8
	feesPayloadLen    = 1 + 8 + 8
	fundingPayloadLen = 1 + 4 + 8 + 8
)

// Decode decodes one binary log payload. The first byte is the event tag;
// the rest is little-endian fixed layout per tag. Returns ErrUnknownTag for
// tags outside the trade event set so callers can skip them.
func Decode(data []byte) (Event, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrShortPayload)
	}

	tag := data[0]
	switch tag {
	case TagSpotFill:
		if len(data) < fillPayloadLen {
			return nil, fmt.Errorf("%w: spot fill needs %d bytes, got %d", ErrShortPayload, fillPayloadLen, len(data))
		}
		return SpotFillEvent{
			OrderID: binary.LittleEndian.Uint64(data[1:9]),
			Side:    data[9],
			Qty:     int64(binary.LittleEndian.Uint64(data[10:18])),
			Price:   int64(binary.LittleEndian.Uint64(data[18:26])),
			Crncy:   int64(binary.LittleEndian.Uint64(data[26:34])),
		}, nil

	case TagPerpFill:
		if len(data) < fillPayloadLen {
			return nil, fmt.Errorf("%w: perp fill needs %d bytes, got %d", ErrShortPayload, fillPayloadLen, len(data))
		}
		return PerpFillEvent{
			OrderID: binary.LittleEndian.Uint64(data[1:9]),
			Side:    data[9],
			Perps:   int64(binary.LittleEndian.Uint64(data[10:18])),
			Price:   int64(binary.LittleEndian.Uint64(data[18:26])),
			Crncy:   int64(binary.LittleEndian.Uint64(data[26:34])),
		}, nil

	case TagSpotFees, TagPerpFees:
		if len(data) < feesPayloadLen {
			return nil, fmt.Errorf("%w: fees report needs %d bytes, got %d", ErrShortPayload, feesPayloadLen, len(data))
		}
		return FeesEvent{
			Perp:       tag == TagPerpFees,
			Fees:       int64(binary.LittleEndian.Uint64(data[1:9])),
			RefPayment: int64(binary.LittleEndian.Uint64(data[9:17])),
		}, nil

	case TagPerpFunding:
		if len(data) < fundingPayloadLen {
			return nil, fmt.Errorf("%w: funding report needs %d bytes, got %d", ErrShortPayload, fundingPayloadLen, len(data))
		}
		return FundingEvent{
			InstrID: binary.LittleEndian.Uint32(data[1:5]),
			Time:    int64(binary.LittleEndian.Uint64(data[5:13])),
			Funding: int64(binary.LittleEndian.Uint64(data[13:21])),
		}, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTag, tag)
	}
}

// toFloat converts a 1e9 fixed-point integer to its decimal value.
func toFloat(v int64) float64 {
	return float64(v) / decimalScale
}
