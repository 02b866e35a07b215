package categorystore

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-service/internal/app/settings/domain"
)

type fakeLoader struct {
	calls atomic.Int32
	cats  domain.Categories
	err   error
}

func (f *fakeLoader) Categories(context.Context) (domain.Categories, error) {
	f.calls.Add(1)
	return f.cats, f.err
}

func TestFetchLoadsOnce(t *testing.T) {
	l := &fakeLoader{cats: domain.Categories{TVChannels: []domain.Category{{ID: "action", Label: "Action"}}}}
	s := New(l)
	assert.False(t, s.Loaded())
	assert.Empty(t, s.Snapshot().TVChannels)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Fetch(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), l.calls.Load())
	assert.Equal(t, "action", s.Snapshot().TVChannels[0].ID)
}

func TestRefreshAlwaysReloads(t *testing.T) {
	l := &fakeLoader{cats: domain.Categories{ArticleCategories: []domain.Category{{ID: "web"}}}}
	s := New(l)
	require.NoError(t, s.Fetch(context.Background()))

	l.cats = domain.Categories{ArticleCategories: []domain.Category{{ID: "mobile"}}}
	require.NoError(t, s.Fetch(context.Background()))
	assert.Equal(t, "web", s.Snapshot().ArticleCategories[0].ID)

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, "mobile", s.Snapshot().ArticleCategories[0].ID)
	assert.Equal(t, int32(2), l.calls.Load())
}

func TestSnapshotIsACopy(t *testing.T) {
	l := &fakeLoader{cats: domain.Categories{ProductCollections: []domain.Category{{ID: "c1"}}}}
	s := New(l)
	cats, err := s.Get(context.Background())
	require.NoError(t, err)

	cats.ProductCollections[0].ID = "mutated"
	assert.Equal(t, "c1", s.Snapshot().ProductCollections[0].ID)
}

func TestFailedLoadKeepsPreviousState(t *testing.T) {
	l := &fakeLoader{cats: domain.Categories{TVChannels: []domain.Category{{ID: "a"}}}}
	s := New(l)
	require.NoError(t, s.Refresh(context.Background()))

	l.err = errors.New("unavailable")
	assert.Error(t, s.Refresh(context.Background()))
	assert.True(t, s.Loaded())
	assert.Equal(t, "a", s.Snapshot().TVChannels[0].ID)
}
