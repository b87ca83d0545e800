package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadString_SetsScalars(t *testing.T) {
	cfg, err := LoadString(`
		oxwm.set_terminal("alacritty")
		oxwm.set_modkey("Mod1")
		oxwm.set_tags({"a", "b", "c"})
	`)
	require.NoError(t, err)
	assert.Equal(t, "alacritty", cfg.Terminal)
	assert.Equal(t, Mod1, cfg.ModKey)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
}

func TestLoadString_KeyBindResolvesModAgainstModKey(t *testing.T) {
	cfg, err := LoadString(`
		oxwm.set_modkey("Mod1")
		oxwm.key.bind({"Mod", "Shift"}, "Q", oxwm.client.kill())
	`)
	require.NoError(t, err)
	require.Len(t, cfg.Bindings, 1)
	step := cfg.Bindings[0].Steps[0]
	assert.Equal(t, maskMod1|maskShift, step.Mods)
	assert.Equal(t, ActionKillClient, cfg.Bindings[0].Action.Kind)
}

func TestLoadString_KeyBindOrderIndependentOfSetModKey(t *testing.T) {
	// set_modkey called after key.bind must still resolve correctly, since
	// ModTokens are only resolved at finalize.
	cfg, err := LoadString(`
		oxwm.key.bind({"Mod"}, "J", oxwm.client.focus_stack(1))
		oxwm.set_modkey("Mod5")
	`)
	require.NoError(t, err)
	assert.Equal(t, maskMod5, cfg.Bindings[0].Steps[0].Mods)
}

func TestLoadString_ChordBinding(t *testing.T) {
	cfg, err := LoadString(`
		oxwm.key.chord({
			{{"Mod"}, "G"},
			{{}, "T"},
		}, oxwm.quit())
	`)
	require.NoError(t, err)
	require.Len(t, cfg.Bindings, 1)
	assert.True(t, cfg.Bindings[0].IsChord())
	assert.Len(t, cfg.Bindings[0].Steps, 2)
}

func TestLoadString_UnknownKeyNameIsError(t *testing.T) {
	_, err := LoadString(`oxwm.key.bind({"Mod"}, "NotAKey", oxwm.quit())`)
	assert.Error(t, err)
}

func TestLoadString_UnknownModTokenIsError(t *testing.T) {
	_, err := LoadString(`oxwm.key.bind({"Bogus"}, "A", oxwm.quit())`)
	assert.Error(t, err)
}

func TestLoadString_SetTagsOutOfRangeIsError(t *testing.T) {
	_, err := LoadString(`oxwm.set_tags({})`)
	assert.Error(t, err)
}

func TestLoadString_SyntaxErrorReportsLine(t *testing.T) {
	_, err := LoadString("oxwm.set_terminal(")
	require.Error(t, err)
	cfgErr, ok := err.(*ConfigError)
	require.True(t, ok)
	assert.NotEmpty(t, cfgErr.Msg)
}

func TestLoadString_ClientActionFactories(t *testing.T) {
	cfg, err := LoadString(`
		oxwm.key.bind({}, "K", oxwm.client.focus_direction("up"))
		oxwm.key.bind({}, "L", oxwm.client.swap_direction("right"))
	`)
	require.NoError(t, err)
	assert.Equal(t, ActionFocusDirection, cfg.Bindings[0].Action.Kind)
	assert.Equal(t, DirUp, cfg.Bindings[0].Action.Arg)
	assert.Equal(t, ActionSwapDirection, cfg.Bindings[1].Action.Kind)
	assert.Equal(t, DirRight, cfg.Bindings[1].Action.Arg)
}

func TestLoadString_GapsAndBorderSetters(t *testing.T) {
	cfg, err := LoadString(`
		oxwm.gaps.set_enabled(true)
		oxwm.gaps.set_inner(4, 8)
		oxwm.border.set_width(3)
		oxwm.border.set_focused_color("#ff0000")
	`)
	require.NoError(t, err)
	assert.True(t, cfg.GapsEnabled)
	assert.Equal(t, uint32(4), cfg.GapInnerH)
	assert.Equal(t, uint32(8), cfg.GapInnerV)
	assert.Equal(t, uint32(3), cfg.BorderWidth)
	assert.Equal(t, Color(0xff0000), cfg.BorderFocused)
}

func TestLoadString_SetMasterFactorAndIncNumMasterAreRuntimeActions(t *testing.T) {
	cfg, err := LoadString(`
		oxwm.key.bind({}, "I", oxwm.inc_num_master(1))
		oxwm.key.bind({}, "O", oxwm.set_master_factor(0.6))
	`)
	require.NoError(t, err)
	assert.Equal(t, ActionIncNumMaster, cfg.Bindings[0].Action.Kind)
	assert.Equal(t, 1, cfg.Bindings[0].Action.Arg)
	assert.Equal(t, ActionSetMasterFactor, cfg.Bindings[1].Action.Kind)
	assert.Equal(t, 0.6, cfg.Bindings[1].Action.Arg)
}

func TestDefault_IsNeverDegraded(t *testing.T) {
	assert.False(t, Default().Degraded)
}

func TestLoadString_BarBlocksRoundTrip(t *testing.T) {
	cfg, err := LoadString(`
		oxwm.bar.set_blocks({
			oxwm.bar.block.ram({format = "ram {}"}),
			oxwm.bar.block.datetime({strftime = "%H:%M"}),
			oxwm.bar.block.shell({command = "uptime", interval = 30}),
		})
	`)
	require.NoError(t, err)
	require.Len(t, cfg.Blocks, 3)
	assert.Equal(t, BlockRAM, cfg.Blocks[0].Source)
	assert.Equal(t, "ram {}", cfg.Blocks[0].Format)
	assert.Equal(t, BlockDateTime, cfg.Blocks[1].Source)
	assert.Equal(t, "%H:%M", cfg.Blocks[1].DateTimeFormat)
	assert.Equal(t, BlockShell, cfg.Blocks[2].Source)
	assert.Equal(t, "uptime", cfg.Blocks[2].ShellCommand)
	assert.Equal(t, 30*time.Second, cfg.Blocks[2].Interval)
}

func TestLoadString_ShellBlockRequiresCommand(t *testing.T) {
	_, err := LoadString(`oxwm.bar.set_blocks({oxwm.bar.block.shell({})})`)
	assert.Error(t, err)
}

func TestLoadString_SchemeColorsAcceptHexAndInteger(t *testing.T) {
	cfg, err := LoadString(`
		oxwm.bar.set_scheme_normal({fg = "#aabbcc", bg = 0x000000})
	`)
	require.NoError(t, err)
	assert.Equal(t, Color(0xaabbcc), cfg.SchemeNormal.FG)
	assert.Equal(t, Color(0x000000), cfg.SchemeNormal.BG)
}

func TestLoadString_TagViewAndMoveToActions(t *testing.T) {
	cfg, err := LoadString(`
		oxwm.key.bind({}, "1", oxwm.tag.view(0))
		oxwm.key.bind({}, "2", oxwm.tag.move_to(2))
	`)
	require.NoError(t, err)
	assert.Equal(t, ActionViewTag, cfg.Bindings[0].Action.Kind)
	assert.Equal(t, 0, cfg.Bindings[0].Action.Arg)
	assert.Equal(t, ActionMoveToTag, cfg.Bindings[1].Action.Kind)
	assert.Equal(t, 2, cfg.Bindings[1].Action.Arg)
}

func TestLoadString_MonitorFocusAndTagActions(t *testing.T) {
	cfg, err := LoadString(`
		oxwm.key.bind({}, "Comma", oxwm.monitor.focus(-1))
		oxwm.key.bind({}, "Period", oxwm.monitor.tag(1))
	`)
	require.NoError(t, err)
	assert.Equal(t, ActionFocusMonitor, cfg.Bindings[0].Action.Kind)
	assert.Equal(t, ActionMoveToMonitor, cfg.Bindings[1].Action.Kind)
}

func TestLoadString_LayoutSetAndCycle(t *testing.T) {
	cfg, err := LoadString(`
		oxwm.key.bind({}, "M", oxwm.layout.set("monocle"))
		oxwm.key.bind({}, "N", oxwm.layout.cycle())
	`)
	require.NoError(t, err)
	assert.Equal(t, ActionChangeLayout, cfg.Bindings[0].Action.Kind)
	assert.Equal(t, "monocle", cfg.Bindings[0].Action.Arg)
	assert.Equal(t, ActionCycleLayout, cfg.Bindings[1].Action.Kind)
}
