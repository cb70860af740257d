package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguoquest/linguoquest/internal/screen"
)

type fakeScreen struct {
	title     string
	inits     int
	closed    bool
	refreshes int
	seen      []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return s.title }
func (s *fakeScreen) Title() string        { return s.title }
func (s *fakeScreen) Close()               { s.closed = true }

func (s *fakeScreen) Refresh() tea.Cmd {
	s.refreshes++
	return nil
}

func stack(titles ...string) (*Router, []*fakeScreen) {
	screens := make([]*fakeScreen, len(titles))
	for i, t := range titles {
		screens[i] = &fakeScreen{title: t}
	}
	r := New(screens[0])
	for _, s := range screens[1:] {
		r.Push(s)
	}
	return r, screens
}

func TestRouter_Navigation(t *testing.T) {
	tests := []struct {
		name       string
		msg        tea.Msg
		wantDepth  int
		wantActive string
		wantClosed []string
	}{
		{"push", PushScreenMsg{Screen: &fakeScreen{title: "result"}}, 4, "result", nil},
		{"pop", PopScreenMsg{}, 2, "setup", []string{"game"}},
		{"replace", ReplaceScreenMsg{Screen: &fakeScreen{title: "result"}}, 3, "result", []string{"game"}},
		{"pop to root", PopToRootMsg{}, 1, "home", []string{"setup", "game"}},
		{"push nil", PushScreenMsg{}, 3, "game", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, screens := stack("home", "setup", "game")
			r.Update(tt.msg)

			assert.Equal(t, tt.wantDepth, r.Depth())
			assert.Equal(t, tt.wantActive, r.Active().Title())
			assert.Equal(t, tt.wantActive, r.View(80, 24))

			var closed []string
			for _, s := range screens {
				if s.closed {
					closed = append(closed, s.title)
				}
			}
			assert.ElementsMatch(t, tt.wantClosed, closed)
		})
	}
}

func TestRouter_InitOnOpen(t *testing.T) {
	r, _ := stack("home")
	next := &fakeScreen{title: "game"}
	r.Push(next)
	assert.Equal(t, 1, next.inits)

	result := &fakeScreen{title: "result"}
	r.Replace(result)
	assert.Equal(t, 1, result.inits)
}

func TestRouter_RootStays(t *testing.T) {
	r, screens := stack("home")
	assert.Nil(t, r.Pop())
	assert.Nil(t, r.PopToRoot())
	assert.Equal(t, 1, r.Depth())
	assert.False(t, screens[0].closed)
	assert.Zero(t, screens[0].refreshes)
}

func TestRouter_RefreshesUncoveredScreen(t *testing.T) {
	r, screens := stack("home", "setup", "game")

	r.Pop()
	assert.Equal(t, 1, screens[1].refreshes)
	assert.Zero(t, screens[0].refreshes)

	r.PopToRoot()
	assert.Equal(t, 1, screens[0].refreshes)
}

func TestRouter_ForwardsToActive(t *testing.T) {
	r, screens := stack("home", "setup")
	key := tea.KeyPressMsg{Code: tea.KeyEnter}
	r.Update(key)

	require.Len(t, screens[1].seen, 1)
	assert.Equal(t, key, screens[1].seen[0])
	assert.Empty(t, screens[0].seen)
}
