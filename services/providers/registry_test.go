package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name Name
}

func (f *fakeProvider) Name() Name { return f.name }

func (f *fakeProvider) Complete(_ context.Context, _ *ChatRequest) (string, error) {
	return "ok", nil
}

func TestNewRegistrySortsByPriority(t *testing.T) {
	r := NewRegistry(
		&fakeProvider{name: NameDeepseek},
		&fakeProvider{name: NameOpenAI},
		&fakeProvider{name: NameGemini},
	)

	var names []Name
	for _, p := range r.Providers() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []Name{NameOpenAI, NameGemini, NameDeepseek}, names)
	assert.Equal(t, 3, r.Count())
}

func TestIdentitiesCoverAllSupportedProviders(t *testing.T) {
	r := NewRegistry(&fakeProvider{name: NameCohere})

	ids := r.Identities()
	require.Len(t, ids, 5)

	assert.Equal(t, NameOpenAI, ids[0].Name)
	assert.Equal(t, NameHuggingFace, ids[1].Name)
	assert.Equal(t, NameCohere, ids[2].Name)
	assert.Equal(t, NameGemini, ids[3].Name)
	assert.Equal(t, NameDeepseek, ids[4].Name)

	for i, id := range ids {
		assert.Equal(t, i+1, id.Priority)
		assert.Equal(t, id.Name == NameCohere, id.Credentialed)
	}
}

func TestEmptyRegistry(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, 0, r.Count())
	assert.Empty(t, r.Providers())
	assert.Len(t, r.Identities(), 5)
	for _, id := range r.Identities() {
		assert.False(t, id.Credentialed)
	}
}

func TestLookup(t *testing.T) {
	r := NewRegistry(&fakeProvider{name: NameOpenAI})

	p, err := r.Lookup(NameOpenAI)
	require.NoError(t, err)
	assert.Equal(t, NameOpenAI, p.Name())

	_, err = r.Lookup(NameGemini)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestPriorityUnknownNameSortsLast(t *testing.T) {
	assert.Greater(t, Priority(Name("unknown")), Priority(NameDeepseek))
}
