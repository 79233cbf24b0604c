package trippackage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcrew/tripcrew/internal/itinerary"
	"github.com/tripcrew/tripcrew/internal/writecoord"
)

type fakeStore struct {
	packages map[int64]*TripPackage
	items    map[int64]*PackageItem
	applied  map[int64]*AppliedPackage
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		packages: make(map[int64]*TripPackage),
		items:    make(map[int64]*PackageItem),
		applied:  make(map[int64]*AppliedPackage),
	}
}

func (f *fakeStore) InsertPackage(_ context.Context, p *TripPackage) error {
	f.nextID++
	p.ID = f.nextID
	stored := *p
	f.packages[p.ID] = &stored
	return nil
}

func (f *fakeStore) InsertItem(_ context.Context, item *PackageItem) error {
	f.nextID++
	item.ID = f.nextID
	stored := *item
	f.items[item.ID] = &stored
	return nil
}

func (f *fakeStore) GetPackageByID(_ context.Context, id int64) (*TripPackage, error) {
	p, ok := f.packages[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) GetItemsByPackageID(_ context.Context, packageID int64) ([]*PackageItem, error) {
	var out []*PackageItem
	for _, item := range f.items {
		if item.PackageID == packageID {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStore) DeletePackage(_ context.Context, id int64) error {
	delete(f.packages, id)
	for itemID, item := range f.items {
		if item.PackageID == id {
			delete(f.items, itemID)
		}
	}
	return nil
}

func (f *fakeStore) ListPackages(_ context.Context, destination string) ([]*TripPackage, error) {
	var out []*TripPackage
	for _, p := range f.packages {
		if destination == "" || p.Destination == destination {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertApplied(_ context.Context, a *AppliedPackage) error {
	f.nextID++
	a.ID = f.nextID
	stored := *a
	f.applied[a.ID] = &stored
	return nil
}

func (f *fakeStore) DeleteApplied(_ context.Context, id int64) error {
	delete(f.applied, id)
	return nil
}

// fakeItineraryStore implements itinerary.Store with failure injection.
type fakeItineraryStore struct {
	items       map[int64]*itinerary.Item
	nextID      int64
	failAfter   int // fail the Nth+1 Insert; -1 disables
	insertCalls int
}

func newFakeItineraryStore() *fakeItineraryStore {
	return &fakeItineraryStore{items: make(map[int64]*itinerary.Item), failAfter: -1}
}

func (f *fakeItineraryStore) Insert(_ context.Context, item *itinerary.Item) error {
	if f.failAfter >= 0 && f.insertCalls >= f.failAfter {
		return errors.New("insert failed")
	}
	f.insertCalls++
	f.nextID++
	item.ID = f.nextID
	stored := *item
	f.items[item.ID] = &stored
	return nil
}

func (f *fakeItineraryStore) GetByID(_ context.Context, id int64) (*itinerary.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItineraryStore) ListByGroupID(_ context.Context, groupID int64) ([]*itinerary.Item, error) {
	var out []*itinerary.Item
	for _, item := range f.items {
		if item.GroupID == groupID {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeItineraryStore) Update(_ context.Context, item *itinerary.Item) error {
	stored := *item
	f.items[item.ID] = &stored
	return nil
}

func (f *fakeItineraryStore) Delete(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

func newTestService(store Store, items itinerary.Store) *Service {
	return NewService(store, items, writecoord.New(nil))
}

func seedPackage(t *testing.T, svc *Service) *PackageWithItems {
	t.Helper()
	notes := "book ahead"
	created, err := svc.Create(context.Background(), &CreatePackageRequest{
		Name:        "Lisbon Weekend",
		Destination: "Lisbon",
		Days:        2,
		Items: []*PackageItemInput{
			{Day: 1, Title: "Alfama walking tour", Notes: &notes},
			{Day: 1, Title: "Fado dinner"},
			{Day: 2, Title: "Belém pastries"},
		},
	})
	require.NoError(t, err)
	return created
}

func TestServiceCreate(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeItineraryStore())

	created := seedPackage(t, svc)
	assert.NotZero(t, created.Package.ID)
	require.Len(t, created.Items, 3)
	for _, item := range created.Items {
		assert.Equal(t, created.Package.ID, item.PackageID)
	}
	assert.Len(t, store.items, 3)
}

func TestServiceApply(t *testing.T) {
	store := newFakeStore()
	itemStore := newFakeItineraryStore()
	svc := newTestService(store, itemStore)
	created := seedPackage(t, svc)

	applied, itemsAdded, err := svc.Apply(context.Background(), created.Package.ID, 7, &ApplyPackageRequest{GroupID: 42})
	require.NoError(t, err)
	assert.Equal(t, 3, itemsAdded)
	assert.Equal(t, int64(42), applied.GroupID)
	assert.Equal(t, int64(7), applied.AppliedBy)

	copied, err := itemStore.ListByGroupID(context.Background(), 42)
	require.NoError(t, err)
	assert.Len(t, copied, 3)
	assert.Len(t, store.applied, 1)
}

func TestServiceApplyRollsBackOnCopyFailure(t *testing.T) {
	store := newFakeStore()
	itemStore := newFakeItineraryStore()
	svc := newTestService(store, itemStore)
	created := seedPackage(t, svc)

	itemStore.failAfter = 2 // third copy fails

	_, _, err := svc.Apply(context.Background(), created.Package.ID, 7, &ApplyPackageRequest{GroupID: 42})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package.apply")

	copied, listErr := itemStore.ListByGroupID(context.Background(), 42)
	require.NoError(t, listErr)
	assert.Empty(t, copied, "copied items must be compensated away")
	assert.Empty(t, store.applied, "applied record must be compensated away")
}

func TestServiceApplyUnknownPackage(t *testing.T) {
	svc := newTestService(newFakeStore(), newFakeItineraryStore())

	_, _, err := svc.Apply(context.Background(), 999, 7, &ApplyPackageRequest{GroupID: 42})
	assert.ErrorIs(t, err, ErrPackageNotFound)
}
