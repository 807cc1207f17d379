package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteListValueNeverNull(t *testing.T) {
	var votes VoteList
	val, err := votes.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), val)
}

func TestVoteListScanRoundTrip(t *testing.T) {
	original := VoteList{{UserID: "1", Vote: 1}, {UserID: "2", Vote: -1}}
	raw, err := original.Value()
	require.NoError(t, err)

	var got VoteList
	require.NoError(t, got.Scan(raw))
	assert.Equal(t, original, got)
}

func TestVoteListScanNil(t *testing.T) {
	var got VoteList
	require.NoError(t, got.Scan(nil))
	assert.Equal(t, VoteList{}, got)
}

func TestVoteListCastAppendsNewUser(t *testing.T) {
	votes := VoteList{{UserID: "1", Vote: 1}}
	got := votes.Cast("2", -1)
	assert.Equal(t, VoteList{{UserID: "1", Vote: 1}, {UserID: "2", Vote: -1}}, got)
}

func TestVoteListCastReplacesExistingUser(t *testing.T) {
	votes := VoteList{{UserID: "1", Vote: 1}, {UserID: "2", Vote: 1}}
	got := votes.Cast("1", -1)

	assert.Equal(t, VoteList{{UserID: "1", Vote: -1}, {UserID: "2", Vote: 1}}, got)
	// The original list is untouched.
	assert.Equal(t, 1, votes[0].Vote)
}

func TestPluginJSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(Plugin{ID: "x", Votes: VoteList{}})
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, key := range []string{"id", "name", "description", "publisherId", "publishedAt", "votes", "version", "plugin"} {
		assert.Contains(t, m, key)
	}
}
