package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/deckgfx/internal/graphics"
	"github.com/rook-computer/deckgfx/internal/store"
)

func openMemory(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:", 8)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBanks(t *testing.T) {
	t.Run("missing bank is not found", func(t *testing.T) {
		s := openMemory(t)

		_, err := s.Bank(1, 1)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.ErrorIs(t, s.DeleteBank(1, 1), store.ErrNotFound)
	})

	t.Run("save, replace and delete", func(t *testing.T) {
		s := openMemory(t)
		png := "aGVsbG8="
		style := graphics.BankStyle{Style: "png", Text: "hi", Size: "large", Color: 0xFFFFFF, BgColor: 0xFF0000, PNG64: &png}

		require.NoError(t, s.SaveBank(2, 3, style))
		got, err := s.Bank(2, 3)
		require.NoError(t, err)
		assert.Equal(t, style, got)

		style.Text = "bye"
		require.NoError(t, s.SaveBank(2, 3, style))
		got, err = s.Bank(2, 3)
		require.NoError(t, err)
		assert.Equal(t, "bye", got.Text)

		all, err := s.Banks()
		require.NoError(t, err)
		assert.Len(t, all, 1)

		require.NoError(t, s.DeleteBank(2, 3))
		_, err = s.Bank(2, 3)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("rejects coordinates outside the grid", func(t *testing.T) {
		s := openMemory(t)

		assert.ErrorIs(t, s.SaveBank(0, 1, graphics.BankStyle{}), store.ErrOutOfRange)
		assert.ErrorIs(t, s.SaveBank(100, 1, graphics.BankStyle{}), store.ErrOutOfRange)
		assert.ErrorIs(t, s.SaveBank(1, 9, graphics.BankStyle{}), store.ErrOutOfRange)
		assert.ErrorIs(t, s.SetPageName(0, "x"), store.ErrOutOfRange)
	})
}

func TestPageNames(t *testing.T) {
	s := openMemory(t)

	_, err := s.PageName(4)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SetPageName(4, "Lights"))
	require.NoError(t, s.SetPageName(4, "Audio"))
	name, err := s.PageName(4)
	require.NoError(t, err)
	assert.Equal(t, "Audio", name)
}

func TestUserConfig(t *testing.T) {
	s := openMemory(t)

	cfg, err := s.UserConfig()
	require.NoError(t, err)
	assert.Equal(t, graphics.UserConfig{}, cfg)

	require.NoError(t, s.SetUserConfig(graphics.KeyPagePlusMinus, true))
	require.NoError(t, s.SetUserConfig(graphics.KeyRemoveTopbar, true))
	require.NoError(t, s.SetUserConfig(graphics.KeyRemoveTopbar, false))
	require.NoError(t, s.SetUserConfig("unrelated", "text"))

	cfg, err = s.UserConfig()
	require.NoError(t, err)
	assert.Equal(t, graphics.UserConfig{PagePlusMinus: true}, cfg)
}

func TestPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.db")

	s, err := store.Open(path, 8)
	require.NoError(t, err)
	require.NoError(t, s.SaveBank(1, 1, graphics.BankStyle{Style: "text", Text: "kept"}))
	require.NoError(t, s.Close())

	s, err = store.Open(path, 8)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Bank(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Text)
}

func TestSource(t *testing.T) {
	s := openMemory(t)
	require.NoError(t, s.SaveBank(1, 2, graphics.BankStyle{Style: graphics.StylePageNum}))
	require.NoError(t, s.SetPageName(1, "Main"))
	source := store.Source{Store: s}

	style, ok := source.BankStyle(1, 2)
	assert.True(t, ok)
	assert.Equal(t, graphics.StylePageNum, style.Style)

	_, ok = source.BankStyle(1, 1)
	assert.False(t, ok)

	name, ok := source.PageName(1)
	assert.True(t, ok)
	assert.Equal(t, "Main", name)

	g := graphics.New(source, graphics.Options{MaxButtons: 8})
	defer g.Close()
	g.Invalidate(1, 2)
	assert.NotEmpty(t, g.GetBank(1, 2).Buffer)
}
