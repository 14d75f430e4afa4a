package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenClose(t *testing.T) {
	m := New()

	tok := m.Open("m1")
	require.NotEmpty(t, tok)
	assert.Equal(t, "m1", m.MemberUID(tok))
	assert.Equal(t, 1, m.Count())

	m.Close(tok)
	assert.Empty(t, m.MemberUID(tok))
	assert.Equal(t, 0, m.Count())
}

func TestCloseAll(t *testing.T) {
	m := New()

	t1 := m.Open("m1")
	t2 := m.Open("m1")
	t3 := m.Open("m2")

	m.CloseAll("m1")

	assert.Empty(t, m.MemberUID(t1))
	assert.Empty(t, m.MemberUID(t2))
	assert.Equal(t, "m2", m.MemberUID(t3))
}

func TestUnknownToken(t *testing.T) {
	m := New()

	assert.Empty(t, m.MemberUID("nope"))
}
