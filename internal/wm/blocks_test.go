package wm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderFormat_SubstitutesFields(t *testing.T) {
	got := renderFormat("{used}/{total}MB", map[string]string{"used": "512", "total": "2048"})
	assert.Equal(t, "512/2048MB", got)
}

func TestRenderFormat_NoPlaceholdersPassesThrough(t *testing.T) {
	got := renderFormat("static text", map[string]string{"used": "512"})
	assert.Equal(t, "static text", got)
}

func TestStrftimeToGo_TranslatesCommonDirectives(t *testing.T) {
	assert.Equal(t, "2006-01-02 15:04", strftimeToGo("%Y-%m-%d %H:%M"))
}

func TestStrftimeToGo_UnknownDirectivePassesThrough(t *testing.T) {
	assert.Equal(t, "%Q", strftimeToGo("%Q"))
}

func TestMaxDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, maxDuration(time.Hour, 2*time.Hour))
	assert.Equal(t, 3*time.Hour, maxDuration(3*time.Hour, time.Hour))
}

func TestStatusString_JoinsRenderedBlocksOnly(t *testing.T) {
	wm := &WM{}
	m := &Monitor{bar: &monitorBar{blocks: []*blockState{
		{rendered: "RAM 50%"},
		{rendered: ""},
		{rendered: "12:00"},
	}}}
	assert.Equal(t, "RAM 50%  12:00", wm.statusString(m))
}
