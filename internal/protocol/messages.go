// Package protocol implements the binary wire format the TCP frontend
// uses to decode the incoming command stream (spec §1: "a serialized
// stream of order commands") and to encode trade/error reports back to
// clients. Framing follows the teacher's fixed-header,
// encoding/binary, big-endian style.
package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"matchbook/internal/engine"

	"github.com/google/uuid"
)

// CommandType identifies which command a message carries.
type CommandType uint16

const (
	// AddOrder submits a new order.
	AddOrder CommandType = iota
	// CancelOrder cancels a resting order.
	CancelOrder
	// ModifyOrder replaces a resting order's price/quantity.
	ModifyOrder
)

// ReportType identifies which report a response carries.
type ReportType uint8

const (
	// ExecutionReport carries one Trade.
	ExecutionReport ReportType = iota
	// ErrorReport carries a rejection for a submitted command.
	ErrorReport
)

// Errors returned while decoding a malformed message. These never
// reach the matching core; the core never sees malformed input.
var (
	ErrMessageTooShort    = errors.New("protocol: message too short")
	ErrUnknownCommandType = errors.New("protocol: unknown command type")
)

const (
	headerLen        = 2  // CommandType
	addOrderBodyLen  = 16 + 8 + 8 + 8 + 1 + 1 + 8 // uuid + id + price + qty + side + tif + userID
	cancelBodyLen    = 16 + 8
	modifyBodyLen    = 16 + 8 + 8 + 8
	reportFixedLen   = 1 + 16 + 8 + 8 + 8 + 8 + 8 + 4 // type + requestID + passive + aggressive + price + qty + ts + error length
)

// AddOrderCommand requests that a new order be placed.
type AddOrderCommand struct {
	RequestID uuid.UUID
	OrderID   int64
	Price     float64
	Quantity  int64
	IsBuy     bool
	UserID    int64
	TIF       engine.TimeInForce
}

// CancelOrderCommand requests that a resting order be removed.
type CancelOrderCommand struct {
	RequestID uuid.UUID
	OrderID   int64
}

// ModifyOrderCommand requests a cancel-and-replace of a resting order.
type ModifyOrderCommand struct {
	RequestID   uuid.UUID
	OrderID     int64
	NewPrice    float64
	NewQuantity int64
}

// EncodeAddOrder serializes an AddOrderCommand onto the wire.
func EncodeAddOrder(c AddOrderCommand) []byte {
	buf := make([]byte, headerLen+addOrderBodyLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(AddOrder))
	off := headerLen
	copy(buf[off:off+16], c.RequestID[:])
	off += 16
	binary.BigEndian.PutUint64(buf[off:off+8], uint64(c.OrderID))
	off += 8
	binary.BigEndian.PutUint64(buf[off:off+8], math.Float64bits(c.Price))
	off += 8
	binary.BigEndian.PutUint64(buf[off:off+8], uint64(c.Quantity))
	off += 8
	if c.IsBuy {
		buf[off] = 1
	}
	off++
	buf[off] = byte(c.TIF)
	off++
	binary.BigEndian.PutUint64(buf[off:off+8], uint64(c.UserID))
	return buf
}

// DecodeAddOrder parses the body of an AddOrder message (header
// already stripped).
func DecodeAddOrder(body []byte) (AddOrderCommand, error) {
	if len(body) < addOrderBodyLen {
		return AddOrderCommand{}, ErrMessageTooShort
	}
	var c AddOrderCommand
	copy(c.RequestID[:], body[0:16])
	off := 16
	c.OrderID = int64(binary.BigEndian.Uint64(body[off : off+8]))
	off += 8
	c.Price = math.Float64frombits(binary.BigEndian.Uint64(body[off : off+8]))
	off += 8
	c.Quantity = int64(binary.BigEndian.Uint64(body[off : off+8]))
	off += 8
	c.IsBuy = body[off] != 0
	off++
	c.TIF = engine.TimeInForce(body[off])
	off++
	c.UserID = int64(binary.BigEndian.Uint64(body[off : off+8]))
	return c, nil
}

// EncodeCancelOrder serializes a CancelOrderCommand onto the wire.
func EncodeCancelOrder(c CancelOrderCommand) []byte {
	buf := make([]byte, headerLen+cancelBodyLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(CancelOrder))
	off := headerLen
	copy(buf[off:off+16], c.RequestID[:])
	off += 16
	binary.BigEndian.PutUint64(buf[off:off+8], uint64(c.OrderID))
	return buf
}

// DecodeCancelOrder parses the body of a CancelOrder message.
func DecodeCancelOrder(body []byte) (CancelOrderCommand, error) {
	if len(body) < cancelBodyLen {
		return CancelOrderCommand{}, ErrMessageTooShort
	}
	var c CancelOrderCommand
	copy(c.RequestID[:], body[0:16])
	c.OrderID = int64(binary.BigEndian.Uint64(body[16:24]))
	return c, nil
}

// EncodeModifyOrder serializes a ModifyOrderCommand onto the wire.
func EncodeModifyOrder(c ModifyOrderCommand) []byte {
	buf := make([]byte, headerLen+modifyBodyLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(ModifyOrder))
	off := headerLen
	copy(buf[off:off+16], c.RequestID[:])
	off += 16
	binary.BigEndian.PutUint64(buf[off:off+8], uint64(c.OrderID))
	off += 8
	binary.BigEndian.PutUint64(buf[off:off+8], math.Float64bits(c.NewPrice))
	off += 8
	binary.BigEndian.PutUint64(buf[off:off+8], uint64(c.NewQuantity))
	return buf
}

// DecodeModifyOrder parses the body of a ModifyOrder message.
func DecodeModifyOrder(body []byte) (ModifyOrderCommand, error) {
	if len(body) < modifyBodyLen {
		return ModifyOrderCommand{}, ErrMessageTooShort
	}
	var c ModifyOrderCommand
	copy(c.RequestID[:], body[0:16])
	off := 16
	c.OrderID = int64(binary.BigEndian.Uint64(body[off : off+8]))
	off += 8
	c.NewPrice = math.Float64frombits(binary.BigEndian.Uint64(body[off : off+8]))
	off += 8
	c.NewQuantity = int64(binary.BigEndian.Uint64(body[off : off+8]))
	return c, nil
}

// DecodeCommandType reads the 2-byte header and returns the command
// type plus the remaining bytes as the body.
func DecodeCommandType(msg []byte) (CommandType, []byte, error) {
	if len(msg) < headerLen {
		return 0, nil, ErrMessageTooShort
	}
	return CommandType(binary.BigEndian.Uint16(msg[0:2])), msg[headerLen:], nil
}

// Report is the wire representation of either an ExecutionReport (one
// Trade) or an ErrorReport (a rejection), keyed back to the request
// that produced it.
type Report struct {
	Type      ReportType
	RequestID uuid.UUID
	Trade     engine.Trade // valid when Type == ExecutionReport
	Err       string       // valid when Type == ErrorReport
}

// Serialize converts the report to its wire form. Layout: 1 byte type,
// 16 bytes request id, 8 bytes passiveID, 8 bytes aggressiveID, 8
// bytes price (float64 bits), 8 bytes quantity, 8 bytes timestamp, 4
// bytes error length, then the error string.
func (r Report) Serialize() []byte {
	errBytes := []byte(r.Err)
	buf := make([]byte, 1+16+8+8+8+8+8+4+len(errBytes))
	buf[0] = byte(r.Type)
	off := 1
	copy(buf[off:off+16], r.RequestID[:])
	off += 16
	binary.BigEndian.PutUint64(buf[off:off+8], uint64(r.Trade.PassiveID))
	off += 8
	binary.BigEndian.PutUint64(buf[off:off+8], uint64(r.Trade.AggressiveID))
	off += 8
	binary.BigEndian.PutUint64(buf[off:off+8], math.Float64bits(r.Trade.Price.Float64()))
	off += 8
	binary.BigEndian.PutUint64(buf[off:off+8], uint64(r.Trade.Quantity))
	off += 8
	binary.BigEndian.PutUint64(buf[off:off+8], uint64(r.Trade.Timestamp))
	off += 8
	binary.BigEndian.PutUint32(buf[off:off+4], uint32(len(errBytes)))
	off += 4
	copy(buf[off:], errBytes)
	return buf
}

func (ct CommandType) String() string {
	switch ct {
	case AddOrder:
		return "AddOrder"
	case CancelOrder:
		return "CancelOrder"
	case ModifyOrder:
		return "ModifyOrder"
	default:
		return fmt.Sprintf("CommandType(%d)", uint16(ct))
	}
}
