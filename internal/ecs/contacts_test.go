package ecs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/harborsweep/internal/domain/collision"
	"github.com/younwookim/harborsweep/internal/domain/entity"
)

type events struct {
	begins, ends []string
}

func (e *events) BeginContact(a, b any) {
	e.begins = append(e.begins, a.(collision.Collidable).ID()+"+"+b.(collision.Collidable).ID())
}

func (e *events) EndContact(a, b any) {
	e.ends = append(e.ends, a.(collision.Collidable).ID()+"-"+b.(collision.Collidable).ID())
}

func TestDetectContacts(t *testing.T) {
	w := NewWorld()
	boat := entity.NewBoat("boat", mgl32.Vec2{50, 50}, box)
	trash := entity.NewTrash("trash", mgl32.Vec2{55, 50}, 1, box)
	rock := entity.NewRock("rock", mgl32.Vec2{90, 90}, 1, box)
	for _, c := range []collision.Collidable{boat, trash, rock} {
		require.NoError(t, w.Add(c))
	}

	ev := &events{}
	begun, ended := w.DetectContacts(ev)
	assert.Equal(t, 1, begun)
	assert.Zero(t, ended)
	assert.Equal(t, []string{"boat+trash"}, ev.begins)

	begun, _ = w.DetectContacts(ev)
	assert.Zero(t, begun, "still overlapping, no new event")

	boat.SetPosition(mgl32.Vec2{85, 90})
	begun, ended = w.DetectContacts(ev)
	assert.Equal(t, 1, begun)
	assert.Equal(t, 1, ended)
	assert.Equal(t, []string{"boat+trash", "boat+rock"}, ev.begins)
	assert.Equal(t, []string{"boat-trash"}, ev.ends)
}

func TestDetectContacts_InactiveEndsContact(t *testing.T) {
	w := NewWorld()
	boat := entity.NewBoat("boat", mgl32.Vec2{50, 50}, box)
	trash := entity.NewTrash("trash", mgl32.Vec2{52, 50}, 1, box)
	require.NoError(t, w.Add(boat))
	require.NoError(t, w.Add(trash))

	ev := &events{}
	w.DetectContacts(ev)
	trash.SetActive(false)
	_, ended := w.DetectContacts(ev)

	assert.Equal(t, 1, ended)
	assert.Empty(t, w.Overlapping())
}
