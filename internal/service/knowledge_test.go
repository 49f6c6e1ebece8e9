package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reedu-reengineering-education/foodmission-backend/internal/apperrors"
	"github.com/reedu-reengineering-education/foodmission-backend/internal/domain"
)

type fakeKnowledgeStore struct {
	contents []domain.KnowledgeContent
	progress map[string]domain.UserProgress

	progressCalls int
	lastBatchIDs  []string
	listSkip      int
	listTake      int
}

func (f *fakeKnowledgeStore) CreateContent(_ context.Context, content domain.KnowledgeContent) (*domain.KnowledgeContent, error) {
	content.ID = "generated"
	f.contents = append(f.contents, content)
	return &content, nil
}

func (f *fakeKnowledgeStore) FindContentByID(_ context.Context, id string) (*domain.KnowledgeContent, error) {
	for _, c := range f.contents {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, apperrors.NotFound("knowledge content not found")
}

func (f *fakeKnowledgeStore) ListContent(_ context.Context, skip, take int) ([]domain.KnowledgeContent, error) {
	f.listSkip, f.listTake = skip, take
	if skip >= len(f.contents) {
		return nil, nil
	}
	end := skip + take
	if end > len(f.contents) {
		end = len(f.contents)
	}
	return f.contents[skip:end], nil
}

func (f *fakeKnowledgeStore) CountContent(context.Context) (int, error) {
	return len(f.contents), nil
}

func (f *fakeKnowledgeStore) ProgressByContentIDs(_ context.Context, _ string, contentIDs []string) (map[string]domain.UserProgress, error) {
	f.progressCalls++
	f.lastBatchIDs = contentIDs
	out := map[string]domain.UserProgress{}
	for _, id := range contentIDs {
		if p, ok := f.progress[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeKnowledgeStore) UpsertProgress(_ context.Context, progress domain.UserProgress) (*domain.UserProgress, error) {
	progress.ID = "p-" + progress.ContentID
	f.progress[progress.ContentID] = progress
	return &progress, nil
}

func newKnowledgeFixture() *fakeKnowledgeStore {
	return &fakeKnowledgeStore{
		contents: []domain.KnowledgeContent{
			{ID: "c1", Title: "Seasonal produce"},
			{ID: "c2", Title: "Food waste"},
			{ID: "c3", Title: "Reading labels"},
		},
		progress: map[string]domain.UserProgress{
			"c1": {ID: "p1", UserID: "u1", ContentID: "c1", Status: domain.ProgressCompleted},
			"c3": {ID: "p2", UserID: "u1", ContentID: "c3", Status: domain.ProgressInProgress},
		},
	}
}

func TestListWithProgressJoinsInOneBatch(t *testing.T) {
	store := newKnowledgeFixture()
	svc := NewKnowledgeService(store)

	result, err := svc.ListWithProgress(context.Background(), "u1", nil, nil)

	require.NoError(t, err)
	require.Len(t, result.Data, 3)

	// one batched child fetch for the whole page, no per-parent queries
	assert.Equal(t, 1, store.progressCalls)
	assert.Equal(t, []string{"c1", "c2", "c3"}, store.lastBatchIDs)

	withProgress := 0
	for _, entry := range result.Data {
		if entry.Progress != nil {
			withProgress++
			assert.Equal(t, entry.ID, entry.Progress.ContentID)
		}
	}
	assert.Equal(t, 2, withProgress)

	for _, entry := range result.Data {
		if entry.ID == "c2" {
			assert.Nil(t, entry.Progress)
		}
	}

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, 1, result.TotalPages)
}

func TestListWithProgressNormalizesPaging(t *testing.T) {
	store := newKnowledgeFixture()
	svc := NewKnowledgeService(store)

	skip, take := -5, 0
	result, err := svc.ListWithProgress(context.Background(), "u1", &skip, &take)

	require.NoError(t, err)
	assert.Equal(t, 0, store.listSkip)
	assert.Equal(t, 10, store.listTake)
	assert.Equal(t, 1, result.Page)
}

func TestSaveProgressRequiresExistingContent(t *testing.T) {
	store := newKnowledgeFixture()
	svc := NewKnowledgeService(store)

	_, err := svc.SaveProgress(context.Background(), "u1", "missing", SaveProgressInput{
		Status: domain.ProgressInProgress,
	})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
}

func TestSaveProgressStampsCompletion(t *testing.T) {
	store := newKnowledgeFixture()
	svc := NewKnowledgeService(store)

	score := 85
	progress, err := svc.SaveProgress(context.Background(), "u1", "c2", SaveProgressInput{
		Status: domain.ProgressCompleted,
		Score:  &score,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ProgressCompleted, progress.Status)
	require.NotNil(t, progress.CompletedAt)
	require.NotNil(t, progress.Score)
	assert.Equal(t, 85, *progress.Score)
}
