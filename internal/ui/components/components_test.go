package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type picked struct{ label string }

func testMenu() Menu {
	item := func(label string, disabled bool) MenuItem {
		return MenuItem{Label: label, Disabled: disabled, Action: func() tea.Cmd {
			return func() tea.Msg { return picked{label} }
		}}
	}
	return NewMenu([]MenuItem{item("Off", true), item("A", false), item("B", false)})
}

func TestMenu_SkipsDisabledAndWraps(t *testing.T) {
	m := testMenu()
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 2, m.Selected)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, m.Selected, "wraps past the disabled first item")
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 2, m.Selected)
}

func TestMenu_Activate(t *testing.T) {
	m := testMenu()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, picked{"A"}, cmd())

	m, cmd = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	require.NotNil(t, cmd)
	assert.Equal(t, picked{"B"}, cmd())
	assert.Equal(t, 2, m.Selected)

	_, cmd = m.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	assert.Nil(t, cmd, "disabled items cannot be picked by number")
}

func TestMenu_Current(t *testing.T) {
	item, ok := testMenu().Current()
	require.True(t, ok)
	assert.Equal(t, "A", item.Label)

	_, ok = NewMenu(nil).Current()
	assert.False(t, ok)
}

func TestProgressBar_Fill(t *testing.T) {
	view := NewProgressBar("", 0.5, 10).View()
	assert.Equal(t, 5, strings.Count(view, "█"))
	assert.Equal(t, 5, strings.Count(view, "░"))

	full := NewProgressBar("HP", 2, 14).View()
	assert.True(t, strings.HasPrefix(full, "HP") || strings.Contains(full, "HP"))
	assert.Equal(t, 0, strings.Count(full, "░"), "fraction is clamped")
}
