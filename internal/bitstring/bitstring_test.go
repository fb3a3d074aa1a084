package bitstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		nBits int
		want  string
	}{
		{"empty", nil, 0, ""},
		{"msb first", []byte{0x80}, 8, "10000000"},
		{"lsb", []byte{0x01}, 8, "00000001"},
		{"two bytes", []byte{0xA5, 0x0F}, 16, "1010010100001111"},
		{"truncated", []byte{0xF0, 0xFF}, 6, "111100"},
		{"crosses byte", []byte{0x00, 0xC0}, 10, "0000000011"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.data, tt.nBits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode([]byte{0xff}, 9)
	require.ErrorIs(t, err, ErrShortInput)

	_, err = Encode([]byte{0xff}, -1)
	require.Error(t, err)
}

func TestByteLen(t *testing.T) {
	assert.Equal(t, 0, ByteLen(0))
	assert.Equal(t, 1, ByteLen(1))
	assert.Equal(t, 1, ByteLen(8))
	assert.Equal(t, 2, ByteLen(9))
	assert.Equal(t, 125000, ByteLen(1000000))
}
