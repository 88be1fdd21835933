package protocol

import (
	"testing"

	"matchbook/internal/engine"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddOrder_RoundTrip(t *testing.T) {
	cmd := AddOrderCommand{
		RequestID: uuid.New(),
		OrderID:   42,
		Price:     101.25,
		Quantity:  7,
		IsBuy:     true,
		UserID:    9001,
		TIF:       engine.FOK,
	}
	wire := EncodeAddOrder(cmd)

	ctype, body, err := DecodeCommandType(wire)
	require.NoError(t, err)
	assert.Equal(t, AddOrder, ctype)

	got, err := DecodeAddOrder(body)
	require.NoError(t, err)
	assert.Equal(t, cmd, got)
}

func TestCancelOrder_RoundTrip(t *testing.T) {
	cmd := CancelOrderCommand{RequestID: uuid.New(), OrderID: 7}
	wire := EncodeCancelOrder(cmd)

	ctype, body, err := DecodeCommandType(wire)
	require.NoError(t, err)
	assert.Equal(t, CancelOrder, ctype)

	got, err := DecodeCancelOrder(body)
	require.NoError(t, err)
	assert.Equal(t, cmd, got)
}

func TestModifyOrder_RoundTrip(t *testing.T) {
	cmd := ModifyOrderCommand{RequestID: uuid.New(), OrderID: 7, NewPrice: 99.5, NewQuantity: 3}
	wire := EncodeModifyOrder(cmd)

	ctype, body, err := DecodeCommandType(wire)
	require.NoError(t, err)
	assert.Equal(t, ModifyOrder, ctype)

	got, err := DecodeModifyOrder(body)
	require.NoError(t, err)
	assert.Equal(t, cmd, got)
}

func TestDecodeAddOrder_TooShort(t *testing.T) {
	_, err := DecodeAddOrder([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrMessageTooShort)
}

func TestReport_SerializeIncludesErrorText(t *testing.T) {
	r := Report{Type: ErrorReport, RequestID: uuid.New(), Err: "boom"}
	wire := r.Serialize()
	assert.Equal(t, byte(ErrorReport), wire[0])
	assert.Contains(t, string(wire), "boom")
}
