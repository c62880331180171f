package csharp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playerSource = `using UnityEngine;

namespace Game.Actors
{
    public class Player : MonoBehaviour, IDamageable
    {
        public float speed = 5f;
        [SerializeField] private int health;
        private bool dead;

        public int Health { get; private set; }

        public void TakeDamage(int amount) { }
        public static Player Spawn(Vector3 at, Quaternion rot) { return null; }
        private void Update() { }

        public enum State { Idle, Running }
    }

    public interface IDamageable
    {
        void TakeDamage(int amount);
    }
}
`

func TestParsePublicAPI(t *testing.T) {
	api, err := NewParser().Parse(context.Background(), "Assets/Player.cs", []byte(playerSource))
	require.NoError(t, err)

	assert.Equal(t, "Assets/Player.cs", api.Path)
	assert.Equal(t, "Game.Actors", api.Namespace)

	byName := make(map[string]TypeAPI)
	for _, typ := range api.Types {
		byName[typ.Name] = typ
	}
	require.Contains(t, byName, "Player")
	require.Contains(t, byName, "IDamageable")
	require.Contains(t, byName, "Player.State")

	player := byName["Player"]
	assert.Equal(t, "class", player.Kind)
	assert.Equal(t, "Game.Actors", player.Namespace)
	assert.Len(t, player.BaseTypes, 2)

	var methods []string
	for _, m := range player.Methods {
		methods = append(methods, m.Name)
	}
	assert.Equal(t, []string{"TakeDamage", "Spawn"}, methods)
	assert.True(t, player.Methods[1].Static)

	var fields []string
	for _, f := range player.Fields {
		fields = append(fields, f.Name)
	}
	assert.Equal(t, []string{"speed", "health"}, fields)
	assert.False(t, player.Fields[0].Serialized)
	assert.True(t, player.Fields[1].Serialized)

	require.Len(t, player.Properties, 1)
	assert.Equal(t, "Health", player.Properties[0].Name)

	iface := byName["IDamageable"]
	assert.Equal(t, "interface", iface.Kind)
	require.Len(t, iface.Methods, 1, "interface members are implicitly public")

	assert.Len(t, byName["Player.State"].Fields, 2)
}

func TestParseEmpty(t *testing.T) {
	api, err := NewParser().Parse(context.Background(), "Assets/Empty.cs", []byte(""))
	require.NoError(t, err)
	assert.Empty(t, api.Types)
	assert.NotNil(t, api.Types)
}
