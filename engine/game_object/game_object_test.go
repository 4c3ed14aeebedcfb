package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-pinwheel/common"
	"github.com/stretchr/testify/assert"
)

func TestNewGameObjectDefaults(t *testing.T) {
	g := NewGameObject()
	assert.Equal(t, uint64(0), g.ID())
	assert.True(t, g.Enabled())
	assert.Equal(t, NoFanIndex, g.FanIndex())
	assert.False(t, g.Mesh().IsValid())
	assert.Equal(t, common.NewTransform(), g.Transform())
	assert.Empty(t, g.Tags())
}

func TestTagsAndFanIndex(t *testing.T) {
	g := NewGameObject(WithTags("blade", "shiny"), WithFanIndex(3))
	assert.True(t, g.HasTag("blade"))
	assert.False(t, g.HasTag("light"))
	assert.ElementsMatch(t, []Tag{"blade", "shiny"}, g.Tags())
	assert.Equal(t, 3, g.FanIndex())
}

func TestRotateLocalZOnlyChangesRotation(t *testing.T) {
	g := NewGameObject(WithTransform(common.TransformFromXYZ(0, 0, -5)))
	g.RotateLocalZ(0.25)
	g.RotateLocalZ(0.25)

	tr := g.Transform()
	assert.Equal(t, [3]float32{0, 0, -5}, tr.Translation)
	assert.InDelta(t, 0.5, tr.Rotation.AngleAbout(common.AxisZ), 1e-5)
}
