package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-pinwheel/engine/camera"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/game_object"
	"github.com/Carmen-Shannon/oxy-pinwheel/engine/light"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAssignsSequentialIDs(t *testing.T) {
	s := NewScene("test")
	a := s.Add(game_object.NewGameObject())
	b := s.Add(game_object.NewGameObject())
	assert.Equal(t, uint64(1), a)
	assert.Equal(t, uint64(2), b)
	assert.Equal(t, 2, s.Count())

	obj, ok := s.Get(b)
	require.True(t, ok)
	assert.Equal(t, b, obj.ID())
}

func TestQueryIsOrderedByID(t *testing.T) {
	s := NewScene("test")
	s.Add(game_object.NewGameObject(game_object.WithID(10), game_object.WithTags("blade")))
	s.Add(game_object.NewGameObject(game_object.WithID(3), game_object.WithTags("blade")))
	s.Add(game_object.NewGameObject(game_object.WithTags("other")))
	s.Add(game_object.NewGameObject(game_object.WithTags("blade")))

	var ids []uint64
	for _, obj := range s.Query("blade") {
		ids = append(ids, obj.ID())
	}
	assert.Equal(t, []uint64{3, 10, 12}, ids)
	assert.Len(t, s.Objects(), 4)
	assert.Empty(t, s.Query("missing"))
}

func TestDuplicateIDPanics(t *testing.T) {
	s := NewScene("test")
	s.Add(game_object.NewGameObject(game_object.WithID(1)))
	assert.Panics(t, func() { s.Add(game_object.NewGameObject(game_object.WithID(1))) })
}

func TestLightsAndCamera(t *testing.T) {
	s := NewScene("test")
	assert.Nil(t, s.Camera())

	s.AddLight(light.NewLight(light.LightTypeDirectional))
	s.AddLight(light.NewLight(light.LightTypeSpot))
	s.AddLight(light.NewLight(light.LightTypeSpot))
	s.SetCamera(camera.NewCamera())

	assert.Len(t, s.Lights(), 3)
	assert.Len(t, s.LightsOfType(light.LightTypeSpot), 2)
	assert.Len(t, s.LightsOfType(light.LightTypePoint), 0)
	assert.NotNil(t, s.Camera())
}

func TestSealedSceneRejectsStructuralChanges(t *testing.T) {
	s := NewScene("test")
	s.Add(game_object.NewGameObject())
	s.Seal()
	require.True(t, s.Sealed())

	assert.Panics(t, func() { s.Add(game_object.NewGameObject()) })
	assert.Panics(t, func() { s.AddLight(light.NewLight(light.LightTypePoint)) })
	assert.Panics(t, func() { s.SetCamera(camera.NewCamera()) })
	assert.Equal(t, 1, s.Count())
}

func TestNilArgumentsPanic(t *testing.T) {
	s := NewScene("test")
	assert.Panics(t, func() { s.Add(nil) })
	assert.Panics(t, func() { s.AddLight(nil) })
	assert.Panics(t, func() { s.SetCamera(nil) })
}
