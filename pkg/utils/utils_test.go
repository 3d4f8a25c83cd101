package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstRunes(t *testing.T) {
	assert.Equal(t, "short", FirstRunes("short", 15))
	assert.Equal(t, "exactly fifteen", FirstRunes("exactly fifteen", 15))
	assert.Equal(t, "please explain", FirstRunes("please explain the chain rule to me", 15))
	// 多字节字符按 rune 截断
	assert.Equal(t, "请解释一下链式法则", FirstRunes("请解释一下链式法则", 15))
	assert.Equal(t, "trimmed", FirstRunes("   trimmed   ", 15))
}

func TestParseAcceptLanguage(t *testing.T) {
	res := ParseAcceptLanguage("zh-CN,zh;q=0.9,en;q=0.8")
	assert.NotEmpty(t, res)
	assert.Equal(t, "zh-CN", res[0].Tag)

	res = ParseAcceptLanguage("en-US;q=0.5,fr;q=0.9")
	assert.Equal(t, "fr", res[0].Tag)

	assert.Empty(t, ParseAcceptLanguage(""))
}

func TestRandomStr(t *testing.T) {
	a := RandomStr(64)
	b := RandomStr(64)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
