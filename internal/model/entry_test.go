package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	validNames := []string{
		"EAGAIN",
		"ENOENT",
		"E2BIG",
		"EWOULDBLOCK",
	}
	for _, name := range validNames {
		t.Run("valid: "+name, func(t *testing.T) {
			assert.NoError(t, ValidateName(name))
		})
	}

	invalidNames := []string{
		"",
		"E",         // nothing after prefix
		"eagain",    // lowercase
		"Eagain",    // lowercase tail
		"ENO ENT",   // space
		"ENO_ENT",   // underscore
		"AGAIN",     // no prefix
		"errorcode", // lowercase prefix
	}
	for _, name := range invalidNames {
		t.Run("invalid: "+name, func(t *testing.T) {
			err := ValidateName(name)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidName))
		})
	}
}

func TestIsErrorName(t *testing.T) {
	assert.True(t, IsErrorName("EPERM"))
	assert.True(t, IsErrorName("Errorcode"))
	assert.False(t, IsErrorName("errorcode"))
	assert.False(t, IsErrorName("__doc__"))
	assert.False(t, IsErrorName(""))
}

func TestFilter(t *testing.T) {
	t.Run("drops names without E prefix", func(t *testing.T) {
		kept, skipped, err := Filter([]Entry{
			{Name: "EPERM", Code: 1},
			{Name: "errorcode", Code: 0},
			{Name: "ENOENT", Code: 2},
		})
		require.NoError(t, err)
		assert.Equal(t, []Entry{{Name: "EPERM", Code: 1}, {Name: "ENOENT", Code: 2}}, kept)
		assert.Equal(t, 1, skipped)
	})

	t.Run("collapses identical duplicates", func(t *testing.T) {
		kept, skipped, err := Filter([]Entry{
			{Name: "EAGAIN", Code: 11},
			{Name: "EAGAIN", Code: 11},
		})
		require.NoError(t, err)
		assert.Len(t, kept, 1)
		assert.Equal(t, 1, skipped)
	})

	t.Run("rejects conflicting duplicates", func(t *testing.T) {
		_, _, err := Filter([]Entry{
			{Name: "EAGAIN", Code: 11},
			{Name: "EAGAIN", Code: 35},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConflictingEntry))
	})

	t.Run("empty input", func(t *testing.T) {
		kept, skipped, err := Filter(nil)
		require.NoError(t, err)
		assert.Empty(t, kept)
		assert.Zero(t, skipped)
	})
}

func TestParseOrder(t *testing.T) {
	cases := map[string]Order{
		"":       OrderName,
		"name":   OrderName,
		"NAME":   OrderName,
		"code":   OrderCode,
		"source": OrderSource,
	}
	for in, want := range cases {
		t.Run("valid: "+in, func(t *testing.T) {
			got, err := ParseOrder(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ParseOrder("random")
	assert.True(t, errors.Is(err, ErrInvalidOrder))
}

func TestSort(t *testing.T) {
	in := func() []Entry {
		return []Entry{
			{Name: "ENOENT", Code: 2},
			{Name: "EWOULDBLOCK", Code: 11},
			{Name: "EAGAIN", Code: 11},
			{Name: "EPERM", Code: 1},
		}
	}

	t.Run("by name", func(t *testing.T) {
		entries := in()
		Sort(entries, OrderName)
		assert.Equal(t, []string{"EAGAIN", "ENOENT", "EPERM", "EWOULDBLOCK"}, names(entries))
	})

	t.Run("by code breaks ties on name", func(t *testing.T) {
		entries := in()
		Sort(entries, OrderCode)
		assert.Equal(t, []string{"EPERM", "ENOENT", "EAGAIN", "EWOULDBLOCK"}, names(entries))
	})

	t.Run("source order untouched", func(t *testing.T) {
		entries := in()
		Sort(entries, OrderSource)
		assert.Equal(t, in(), entries)
	})
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
