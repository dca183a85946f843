package attribution

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPostSource struct {
	listings map[string][]string
	err      error
}

func (m *mockPostSource) PostIDs(platform string) ([]string, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	ids, ok := m.listings[platform]
	return ids, ok, nil
}

func TestBuildRegistry(t *testing.T) {
	src := &mockPostSource{listings: map[string][]string{
		"instagram": {"POST_0001", "POST_0002"},
		"twitter":   {"POST_0003"},
		"linkedin":  {"POST_0004"},
	}}

	registry, err := BuildRegistry(src)
	require.NoError(t, err)

	assert.Equal(t, "Instagram", registry.Resolve("POST_0001"))
	assert.Equal(t, "Twitter", registry.Resolve("POST_0003"))
	assert.Equal(t, "Linkedin", registry.Resolve("POST_0004"))
}

func TestBuildRegistryAbsentListingsSkipped(t *testing.T) {
	src := &mockPostSource{listings: map[string][]string{
		"facebook": {"POST_0007"},
	}}

	registry, err := BuildRegistry(src)
	require.NoError(t, err)
	assert.Len(t, registry, 1)
	assert.Equal(t, "Facebook", registry.Resolve("POST_0007"))
}

func TestBuildRegistryCollisionLastWriteWins(t *testing.T) {
	// Same post ID in instagram and twitter listings: twitter scans
	// later and overwrites without a conflict signal.
	src := &mockPostSource{listings: map[string][]string{
		"instagram": {"POST_0001"},
		"twitter":   {"POST_0001"},
	}}

	registry, err := BuildRegistry(src)
	require.NoError(t, err)
	assert.Equal(t, "Twitter", registry.Resolve("POST_0001"))
}

func TestBuildRegistryError(t *testing.T) {
	src := &mockPostSource{err: errors.New("disk gone")}
	_, err := BuildRegistry(src)
	assert.Error(t, err)
}

func TestResolveUnknownPostIsGeneral(t *testing.T) {
	registry := PostRegistry{"POST_0001": "Instagram"}
	assert.Equal(t, "General", registry.Resolve("POST_9999"))
	assert.Equal(t, "General", PostRegistry{}.Resolve("POST_0001"))
}
