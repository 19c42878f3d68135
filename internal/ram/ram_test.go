package ram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRAM(t *testing.T) {
	r := NewRAM(0x80)
	assert.Equal(t, 0x80, r.Len())

	for i := uint16(0); i < 0x80; i++ {
		r.Write(i, uint8(i)^0x5A)
	}
	for i := uint16(0); i < 0x80; i++ {
		assert.Equal(t, uint8(i)^0x5A, r.Read(i))
	}

	t.Run("wraps", func(t *testing.T) {
		r.Write(0x80, 0x12)
		assert.Equal(t, uint8(0x12), r.Read(0x00))
		assert.Equal(t, uint8(0x12), r.Read(0xFF00))
	})
}
