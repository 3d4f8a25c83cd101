package marker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMarkAndExpire(t *testing.T) {
	r := NewRegistry(50 * time.Millisecond)

	r.Mark("msg1")
	assert.True(t, r.IsMarked("msg1"))
	assert.False(t, r.IsMarked("msg2"))

	time.Sleep(80 * time.Millisecond)
	assert.False(t, r.IsMarked("msg1"))
}

func TestRemarkExtendsDeadline(t *testing.T) {
	r := NewRegistry(60 * time.Millisecond)

	r.Mark("msg1")
	time.Sleep(40 * time.Millisecond)
	r.Mark("msg1")
	time.Sleep(40 * time.Millisecond)
	assert.True(t, r.IsMarked("msg1"))
}
