package bcs

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadScalars(t *testing.T) {
	r := NewReader([]byte{
		0x01,       // bool true
		0x02, 0x01, // u16 = 258
		0x04, 0x03, 0x02, 0x01, // u32
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, // u64
	})

	b, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, b)

	v16, err := r.ReadU16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0102), v16)

	v32, err := r.ReadU32()
	require.NoError(t, err)
	require.Equal(t, uint32(0x01020304), v32)

	v64, err := r.ReadU64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), v64)

	require.Equal(t, 0, r.Len())
}

func TestReadU128(t *testing.T) {
	buf := make([]byte, 16)
	buf[0] = 0x01 // little-endian low byte
	buf[15] = 0x02

	r := NewReader(buf)
	v, err := r.ReadU128()
	require.NoError(t, err)

	want := new(big.Int).Lsh(big.NewInt(2), 120)
	want.Add(want, big.NewInt(1))
	require.Equal(t, 0, want.Cmp(v))
}

func TestReadULEB128(t *testing.T) {
	r := NewReader([]byte{0xe5, 0x8e, 0x26})
	v, err := r.ReadULEB128()
	require.NoError(t, err)
	require.Equal(t, uint64(624485), v)

	r = NewReader([]byte{0x05})
	v, err = r.ReadULEB128()
	require.NoError(t, err)
	require.Equal(t, uint64(5), v)
}

func TestReadString(t *testing.T) {
	r := NewReader([]byte{0x03, 'a', 'b', 'c'})
	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "abc", s)
}

func TestReadVector(t *testing.T) {
	r := NewReader([]byte{0x02, 0x0a, 0x14})
	out, err := ReadVector(r, func(rr *Reader) (byte, error) { return rr.ReadByte() })
	require.NoError(t, err)
	require.Equal(t, []byte{10, 20}, out)
}

func TestShortInput(t *testing.T) {
	r := NewReader([]byte{0x01})
	_, err := r.ReadU64()
	require.ErrorContains(t, err, "decode_error")

	_, err = NewReader(nil).ReadByte()
	require.Error(t, err)
}

func TestInvalidBool(t *testing.T) {
	_, err := NewReader([]byte{0x02}).ReadBool()
	require.ErrorContains(t, err, "invalid bool")
}
