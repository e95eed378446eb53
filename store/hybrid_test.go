package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/roteirolab/roteiro-backend/logger"
	"github.com/roteirolab/roteiro-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

// MockQuoteStore is a testify mock of QuoteStore.
type MockQuoteStore struct {
	mock.Mock
}

func (m *MockQuoteStore) CreateQuote(ctx context.Context, quote *types.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteStore) GetQuoteByID(ctx context.Context, id string) (*types.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Quote), args.Error(1)
}

func (m *MockQuoteStore) GetQuoteByPublicID(ctx context.Context, publicID string) (*types.Quote, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Quote), args.Error(1)
}

func (m *MockQuoteStore) UpdateQuote(ctx context.Context, id string, update *types.QuoteUpdate) (*types.Quote, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Quote), args.Error(1)
}

var _ QuoteStore = (*MockQuoteStore)(nil)

// fakeQuoteStore is a stateful in-memory QuoteStore for flows that need
// reads to observe earlier writes.
type fakeQuoteStore struct {
	quotes map[string]*types.Quote
}

func newFakeQuoteStore() *fakeQuoteStore {
	return &fakeQuoteStore{quotes: map[string]*types.Quote{}}
}

func (f *fakeQuoteStore) CreateQuote(_ context.Context, quote *types.Quote) error {
	q := *quote
	f.quotes[quote.ID] = &q
	return nil
}

func (f *fakeQuoteStore) GetQuoteByID(_ context.Context, id string) (*types.Quote, error) {
	if q, ok := f.quotes[id]; ok {
		copied := *q
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (f *fakeQuoteStore) GetQuoteByPublicID(_ context.Context, publicID string) (*types.Quote, error) {
	for _, q := range f.quotes {
		if q.PublicID == publicID {
			copied := *q
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeQuoteStore) UpdateQuote(_ context.Context, id string, update *types.QuoteUpdate) (*types.Quote, error) {
	q, ok := f.quotes[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.PublicID != nil {
		q.PublicID = *update.PublicID
	}
	if update.Versions != nil {
		q.Versions = update.Versions
	}
	copied := *q
	return &copied, nil
}

// panicQuoteStore fails the test if any operation reaches it.
type panicQuoteStore struct{}

func (panicQuoteStore) CreateQuote(context.Context, *types.Quote) error {
	panic("remote store must not be touched")
}

func (panicQuoteStore) GetQuoteByID(context.Context, string) (*types.Quote, error) {
	panic("remote store must not be touched")
}

func (panicQuoteStore) GetQuoteByPublicID(context.Context, string) (*types.Quote, error) {
	panic("remote store must not be touched")
}

func (panicQuoteStore) UpdateQuote(context.Context, string, *types.QuoteUpdate) (*types.Quote, error) {
	panic("remote store must not be touched")
}

type fakeDestinationStore struct {
	dests map[string]*types.Destination
}

func newFakeDestinationStore() *fakeDestinationStore {
	return &fakeDestinationStore{dests: map[string]*types.Destination{}}
}

func (f *fakeDestinationStore) GetDestination(_ context.Context, key string) (*types.Destination, error) {
	if d, ok := f.dests[key]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (f *fakeDestinationStore) UpsertDestination(_ context.Context, dest *types.Destination) error {
	copied := *dest
	f.dests[dest.Key] = &copied
	return nil
}

func offlineRepo(local QuoteStore) *HybridRepository {
	return NewHybridRepository(panicQuoteStore{}, local, nil, newFakeDestinationStore(), false)
}

var (
	quoteIDPattern  = regexp.MustCompile(`^quote-\d+$`)
	publicIDPattern = regexp.MustCompile(`^q-\d+$`)
)

func TestCreateQuoteSeedsIdentityAndDefaultVersion(t *testing.T) {
	local := newFakeQuoteStore()
	repo := offlineRepo(local)

	quote, err := repo.CreateQuote(context.Background(), types.QuoteInput{
		ClientName:     "João",
		DestinationKey: "paris",
	})
	require.NoError(t, err)

	assert.Regexp(t, quoteIDPattern, quote.ID)
	assert.Regexp(t, publicIDPattern, quote.PublicID)
	require.Len(t, quote.Versions, 1)
	assert.Equal(t, types.QuoteVersion{
		VersionID: "v1",
		Label:     DefaultVersionLabel,
		Price:     types.PriceOnRequest,
	}, quote.Versions[0])
	assert.False(t, quote.CreatedAt.IsZero())

	// Retrievable immediately after creation.
	fetched, err := repo.GetQuoteByID(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, quote.ID, fetched.ID)
}

func TestCreateQuoteDefaultVersionPrice(t *testing.T) {
	tests := []struct {
		name     string
		data     *types.ExtractedTripData
		expected string
	}{
		{
			name:     "uses extracted total price",
			data:     &types.ExtractedTripData{Destination: "Paris", TotalPrice: "R$ 7.910"},
			expected: "R$ 7.910",
		},
		{
			name: "falls back to payment breakdown total",
			data: &types.ExtractedTripData{
				Destination: "Paris",
				PaymentInfo: &types.PaymentInfo{Total: "R$ 8.200"},
			},
			expected: "R$ 8.200",
		},
		{
			name:     "no price anywhere",
			data:     &types.ExtractedTripData{Destination: "Paris"},
			expected: types.PriceOnRequest,
		},
		{
			name:     "no extracted data at all",
			data:     nil,
			expected: types.PriceOnRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := offlineRepo(newFakeQuoteStore())
			quote, err := repo.CreateQuote(context.Background(), types.QuoteInput{
				ClientName:     "Ana",
				DestinationKey: "paris",
				ExtractedData:  tc.data,
			})
			require.NoError(t, err)
			require.Len(t, quote.Versions, 1)
			assert.Equal(t, tc.expected, quote.Versions[0].Price)
		})
	}
}

// With the remote store unconfigured every operation must resolve against
// the local store alone; panicQuoteStore fails the test on any remote call.
func TestOfflineModeNeverTouchesRemote(t *testing.T) {
	local := newFakeQuoteStore()
	repo := offlineRepo(local)
	ctx := context.Background()

	quote, err := repo.CreateQuote(ctx, types.QuoteInput{ClientName: "Ana", DestinationKey: "paris"})
	require.NoError(t, err)

	_, err = repo.GetQuoteByID(ctx, quote.ID)
	require.NoError(t, err)

	_, err = repo.GetQuoteByPublicID(ctx, quote.PublicID)
	require.NoError(t, err)

	_, err = repo.UpdateQuote(ctx, quote.ID, &types.QuoteUpdate{Versions: quote.Versions})
	require.NoError(t, err)

	_, err = repo.GeneratePublicLink(ctx, quote.ID)
	require.NoError(t, err)
}

func TestCreateQuoteFallsBackOnRemoteSoftFailure(t *testing.T) {
	remote := new(MockQuoteStore)
	remote.On("CreateQuote", mock.Anything, mock.Anything).Return(ErrUnavailable)

	local := newFakeQuoteStore()
	repo := NewHybridRepository(remote, local, nil, newFakeDestinationStore(), true)

	quote, err := repo.CreateQuote(context.Background(), types.QuoteInput{
		ClientName:     "Ana",
		DestinationKey: "paris",
	})
	require.NoError(t, err)

	// The record landed in the local store.
	_, ok := local.quotes[quote.ID]
	assert.True(t, ok)
	remote.AssertExpectations(t)
}

func TestCreateQuoteRemoteSuccessSkipsLocal(t *testing.T) {
	remote := new(MockQuoteStore)
	remote.On("CreateQuote", mock.Anything, mock.Anything).Return(nil)

	repo := NewHybridRepository(remote, panicQuoteStore{}, nil, newFakeDestinationStore(), true)

	_, err := repo.CreateQuote(context.Background(), types.QuoteInput{
		ClientName:     "Ana",
		DestinationKey: "paris",
	})
	require.NoError(t, err)
	remote.AssertExpectations(t)
}

func TestGetQuoteFallsBackOnRemoteMiss(t *testing.T) {
	remote := new(MockQuoteStore)
	remote.On("GetQuoteByID", mock.Anything, "quote-1").Return(nil, ErrNotFound)

	local := newFakeQuoteStore()
	local.quotes["quote-1"] = &types.Quote{ID: "quote-1", ClientName: "Ana", DestinationKey: "paris"}

	repo := NewHybridRepository(remote, local, nil, newFakeDestinationStore(), true)

	quote, err := repo.GetQuoteByID(context.Background(), "quote-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", quote.ClientName)
}

func TestGetQuoteNotFoundInEitherStore(t *testing.T) {
	remote := new(MockQuoteStore)
	remote.On("GetQuoteByID", mock.Anything, "quote-missing").Return(nil, ErrNotFound)

	repo := NewHybridRepository(remote, newFakeQuoteStore(), nil, newFakeDestinationStore(), true)

	_, err := repo.GetQuoteByID(context.Background(), "quote-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGeneratePublicLinkIsIdempotent(t *testing.T) {
	local := newFakeQuoteStore()
	repo := offlineRepo(local)
	ctx := context.Background()

	quote, err := repo.CreateQuote(ctx, types.QuoteInput{ClientName: "Ana", DestinationKey: "paris"})
	require.NoError(t, err)

	first, err := repo.GeneratePublicLink(ctx, quote.ID)
	require.NoError(t, err)
	second, err := repo.GeneratePublicLink(ctx, quote.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, quote.PublicID, first, "existing token must be reused, not replaced")
}

func TestGeneratePublicLinkMintsWhenAbsent(t *testing.T) {
	local := newFakeQuoteStore()
	// A quote imported without a public token.
	local.quotes["quote-1"] = &types.Quote{ID: "quote-1", ClientName: "Ana", DestinationKey: "paris"}

	repo := offlineRepo(local)
	ctx := context.Background()

	token, err := repo.GeneratePublicLink(ctx, "quote-1")
	require.NoError(t, err)
	assert.Regexp(t, publicIDPattern, token)

	// Stable on subsequent calls.
	again, err := repo.GeneratePublicLink(ctx, "quote-1")
	require.NoError(t, err)
	assert.Equal(t, token, again)
}

func TestRegeneratePublicLinkReplacesToken(t *testing.T) {
	local := newFakeQuoteStore()
	local.quotes["quote-1"] = &types.Quote{ID: "quote-1", PublicID: "q-111", ClientName: "Ana", DestinationKey: "paris"}

	repo := offlineRepo(local)

	token, err := repo.RegeneratePublicLink(context.Background(), "quote-1")
	require.NoError(t, err)
	assert.NotEqual(t, "q-111", token)
	assert.Regexp(t, publicIDPattern, token)
	assert.Equal(t, token, local.quotes["quote-1"].PublicID)
}

func TestAddVersionAppendsSequentially(t *testing.T) {
	local := newFakeQuoteStore()
	repo := offlineRepo(local)
	ctx := context.Background()

	quote, err := repo.CreateQuote(ctx, types.QuoteInput{ClientName: "Ana", DestinationKey: "paris"})
	require.NoError(t, err)

	updated, err := repo.AddVersion(ctx, quote.ID, "Pacote Premium", "R$ 12.400")
	require.NoError(t, err)
	require.Len(t, updated.Versions, 2)
	assert.Equal(t, "v2", updated.Versions[1].VersionID)
	assert.Equal(t, "Pacote Premium", updated.Versions[1].Label)
	assert.Equal(t, "R$ 12.400", updated.Versions[1].Price)

	updated, err = repo.AddVersion(ctx, quote.ID, "Pacote Econômico", "")
	require.NoError(t, err)
	require.Len(t, updated.Versions, 3)
	assert.Equal(t, "v3", updated.Versions[2].VersionID)
	assert.Equal(t, types.PriceOnRequest, updated.Versions[2].Price)
}

func TestMode(t *testing.T) {
	assert.Equal(t, "offline", offlineRepo(newFakeQuoteStore()).Mode())

	online := NewHybridRepository(new(MockQuoteStore), newFakeQuoteStore(), nil, newFakeDestinationStore(), true)
	assert.Equal(t, "online", online.Mode())
}

func TestDestinationFallback(t *testing.T) {
	localDests := newFakeDestinationStore()
	require.NoError(t, localDests.UpsertDestination(context.Background(), &types.Destination{
		Key:          "paris",
		Name:         "Paris",
		HeroImageURL: "https://cdn.example.com/paris.jpg",
	}))

	repo := NewHybridRepository(panicQuoteStore{}, newFakeQuoteStore(), nil, localDests, false)

	dest, err := repo.GetDestination(context.Background(), "paris")
	require.NoError(t, err)
	assert.True(t, dest.HasAssets())

	_, err = repo.GetDestination(context.Background(), "atlantida")
	assert.ErrorIs(t, err, ErrNotFound)
}
