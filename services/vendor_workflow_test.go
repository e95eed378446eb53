package services

import (
	"context"
	"testing"

	apperrors "github.com/roteirolab/roteiro-backend/errors"
	"github.com/roteirolab/roteiro-backend/logger"
	"github.com/roteirolab/roteiro-backend/store"
	"github.com/roteirolab/roteiro-backend/store/local"
	"github.com/roteirolab/roteiro-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

// MockExtractor is a testify mock of Extractor.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) IsConfigured() bool {
	return m.Called().Bool(0)
}

func (m *MockExtractor) Extract(ctx context.Context, files []UploadedFile) types.ExtractionResult {
	args := m.Called(ctx, files)
	return args.Get(0).(types.ExtractionResult)
}

var _ Extractor = (*MockExtractor)(nil)

// MockImageClient is a testify mock of the Pexels client interface.
type MockImageClient struct {
	mock.Mock
}

func (m *MockImageClient) SearchDestinationImage(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

func localRepo(t *testing.T) *store.HybridRepository {
	t.Helper()
	dir := t.TempDir()
	return store.NewHybridRepository(nil, local.NewQuoteStore(dir),
		nil, local.NewDestinationStore(dir), false)
}

func seedDestination(t *testing.T, repo *store.HybridRepository, key string) {
	t.Helper()
	require.NoError(t, repo.UpsertDestination(context.Background(), &types.Destination{
		Key:          key,
		Name:         "Paris",
		HeroImageURL: "https://cdn.example.com/paris.jpg",
	}))
}

func TestWorkflowTransitions(t *testing.T) {
	tests := []struct {
		from    WorkflowState
		to      WorkflowState
		allowed bool
	}{
		{StateIdle, StateExtracting, true},
		{StateIdle, StateChecking, true},
		{StateIdle, StateSaving, false},
		{StateExtracting, StateExtracted, true},
		{StateExtracting, StateChecking, false},
		{StateExtracted, StateChecking, true},
		{StateChecking, StateSaving, true},
		{StateSaving, StateIdle, true},
		{StateSaving, StateExtracting, false},
		{StateExtracting, StateError, true},
		{StateChecking, StateError, true},
		{StateError, StateIdle, true},
		{StateError, StateChecking, true},
		{StateError, StateSaving, false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestExtractNotConfigured(t *testing.T) {
	extractor := new(MockExtractor)
	extractor.On("IsConfigured").Return(false)

	w := NewVendorWorkflow(extractor, localRepo(t), nil, "https://roteiro.app")

	_, err := w.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, ErrExtractorNotConfigured)
	// The flow stays idle; manual entry follows.
	assert.Equal(t, StateIdle, w.State())
}

func TestExtractSuccess(t *testing.T) {
	files := []UploadedFile{{Name: "quote.png", MimeType: "image/png", Data: []byte("img")}}
	extractor := new(MockExtractor)
	extractor.On("IsConfigured").Return(true)
	extractor.On("Extract", mock.Anything, files).Return(types.ExtractionResult{
		Success: true,
		Data:    &types.ExtractedTripData{Destination: "Paris", TotalPrice: "R$ 7.910"},
	})

	w := NewVendorWorkflow(extractor, localRepo(t), nil, "https://roteiro.app")

	data, err := w.Extract(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, "Paris", data.Destination)
	assert.Equal(t, StateExtracted, w.State())
}

func TestExtractFailureEntersErrorStateAndRetries(t *testing.T) {
	extractor := new(MockExtractor)
	extractor.On("IsConfigured").Return(true)
	extractor.On("Extract", mock.Anything, mock.Anything).Return(types.ExtractionResult{
		Success: false,
		Error:   "Não foi possível interpretar os dados extraídos do documento",
	})

	w := NewVendorWorkflow(extractor, localRepo(t), nil, "https://roteiro.app")

	_, err := w.Extract(context.Background(), []UploadedFile{{Name: "blurry.png"}})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ExtractionError, appErr.Type)

	assert.Equal(t, StateError, w.State())
	assert.Equal(t, "Não foi possível interpretar os dados extraídos do documento", w.LastError())

	// Retry returns to idle so the vendor can re-upload or type manually.
	require.NoError(t, w.Retry())
	assert.Equal(t, StateIdle, w.State())
	assert.Empty(t, w.LastError())
}

func TestSaveQuoteValidation(t *testing.T) {
	w := NewVendorWorkflow(new(MockExtractor), localRepo(t), nil, "https://roteiro.app")
	ctx := context.Background()

	_, err := w.SaveQuote(ctx, types.QuoteInput{DestinationKey: "paris"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ValidationError, appErr.Type)

	_, err = w.SaveQuote(ctx, types.QuoteInput{ClientName: "Ana"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ValidationError, appErr.Type)
}

func TestSaveQuoteRequiresDestinationAssets(t *testing.T) {
	w := NewVendorWorkflow(new(MockExtractor), localRepo(t), nil, "https://roteiro.app")

	_, err := w.SaveQuote(context.Background(), types.QuoteInput{
		ClientName:     "Ana",
		DestinationKey: "atlantida",
	})
	assert.ErrorIs(t, err, ErrDestinationSetupNeeded)
	// Back at the actionable step, not stuck in checking.
	assert.Equal(t, StateIdle, w.State())
}

func TestSaveQuoteHappyPath(t *testing.T) {
	repo := localRepo(t)
	seedDestination(t, repo, "paris")

	w := NewVendorWorkflow(new(MockExtractor), repo, nil, "https://roteiro.app/")

	result, err := w.SaveQuote(context.Background(), types.QuoteInput{
		ClientName:     "Ana",
		DestinationKey: "paris",
		ExtractedData:  &types.ExtractedTripData{Destination: "Paris", TotalPrice: "R$ 7.910"},
	})
	require.NoError(t, err)
	assert.Equal(t, StateIdle, w.State())

	require.NotNil(t, result.Quote)
	assert.NotEmpty(t, result.Quote.ID)
	assert.NotEmpty(t, result.Quote.PublicID)
	assert.Equal(t, "https://roteiro.app/p/"+result.Quote.PublicID, result.Links.PreviewURL)
	assert.Equal(t, "https://roteiro.app/q/"+result.Quote.PublicID, result.Links.DirectURL)
}

func TestSaveQuoteAfterExtraction(t *testing.T) {
	repo := localRepo(t)
	seedDestination(t, repo, "paris")

	extractor := new(MockExtractor)
	extractor.On("IsConfigured").Return(true)
	extractor.On("Extract", mock.Anything, mock.Anything).Return(types.ExtractionResult{
		Success: true,
		Data:    &types.ExtractedTripData{Destination: "Paris"},
	})

	w := NewVendorWorkflow(extractor, repo, nil, "https://roteiro.app")
	ctx := context.Background()

	data, err := w.Extract(ctx, []UploadedFile{{Name: "quote.png"}})
	require.NoError(t, err)

	result, err := w.SaveQuote(ctx, types.QuoteInput{
		ClientName:     "Ana",
		DestinationKey: "paris",
		ExtractedData:  data,
	})
	require.NoError(t, err)
	assert.Equal(t, StateIdle, w.State())
	assert.NotNil(t, result.Quote.ExtractedData)
}

func TestSetupDestinationAssetsSeedsHeroFromPexels(t *testing.T) {
	repo := localRepo(t)
	images := new(MockImageClient)
	images.On("SearchDestinationImage", mock.Anything, "Paris").
		Return("https://images.pexels.com/paris.jpg", nil)

	w := NewVendorWorkflow(new(MockExtractor), repo, images, "https://roteiro.app")

	dest, err := w.SetupDestinationAssets(context.Background(), "paris", "Paris", "")
	require.NoError(t, err)
	assert.Equal(t, "https://images.pexels.com/paris.jpg", dest.HeroImageURL)
	assert.True(t, dest.HasAssets())

	// A save against the freshly set-up destination now proceeds.
	_, err = w.SaveQuote(context.Background(), types.QuoteInput{
		ClientName:     "Ana",
		DestinationKey: "paris",
	})
	require.NoError(t, err)
	images.AssertExpectations(t)
}

func TestSetupDestinationAssetsKeepsCuratedHero(t *testing.T) {
	w := NewVendorWorkflow(new(MockExtractor), localRepo(t), new(MockImageClient), "https://roteiro.app")

	dest, err := w.SetupDestinationAssets(context.Background(), "paris", "Paris",
		"https://cdn.example.com/curated.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/curated.jpg", dest.HeroImageURL)
}

func TestBuildPublicLinks(t *testing.T) {
	links := BuildPublicLinks("https://roteiro.app/", "q-123")
	assert.Equal(t, "https://roteiro.app/p/q-123", links.PreviewURL)
	assert.Equal(t, "https://roteiro.app/q/q-123", links.DirectURL)
}
