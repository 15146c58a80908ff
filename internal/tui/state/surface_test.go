package state

import (
	"testing"

	"github.com/cristianoliveira/debugmenu/internal/action"
	"github.com/cristianoliveira/debugmenu/internal/tree"
	"github.com/cristianoliveira/debugmenu/internal/tui/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceLineFollowsStatus(t *testing.T) {
	s := NewSurface(render.DefaultStyles())
	s.SetWidth(30)
	toggle := action.NewSwitch("", "God Mode", false, nil, nil)
	s.BindRow(0, &tree.Node{Name: "God Mode", Action: toggle}, false)

	line, ok := s.Line(0)
	require.True(t, ok)
	assert.Contains(t, line, "Off")

	toggle.Resolve(nil)
	line, _ = s.Line(0)
	assert.Contains(t, line, "On")
}

func TestSurfaceUnbind(t *testing.T) {
	s := NewSurface(render.DefaultStyles())
	s.BindRow(2, &tree.Node{Name: "x", Action: action.NewButton("", "x", nil)}, true)
	require.Equal(t, 1, s.Bound())

	s.BindRow(2, nil, false)

	_, ok := s.Line(2)
	assert.False(t, ok)
	assert.Zero(t, s.Bound())
}

func TestSurfaceChrome(t *testing.T) {
	s := NewSurface(render.DefaultStyles())

	s.ShowGroupLabel("Tools")
	s.ShowBackAffordance(true)
	s.ShowTooltip("Description:\nx\n")

	assert.Equal(t, "Tools", s.Label())
	assert.True(t, s.Back())
	assert.Equal(t, "Description:\nx\n", s.Tooltip())
}
