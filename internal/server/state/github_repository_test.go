package state

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/common"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/logging"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/models"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/storage/githubapi"
	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/server/storage/githubtest"
)

const dbPath = "db.json"

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestRepo(t *testing.T) (*GitHubRepository, *githubtest.Server) {
	t.Helper()
	srv := githubtest.New()
	t.Cleanup(srv.Close)
	client := githubapi.NewClient("tok", "zenibaba", "ZEXXY_KEYAUTH", "main", githubapi.WithBaseURL(srv.URL))
	return NewGitHubRepository(client, dbPath, testLogger()), srv
}

func TestLoad_Absent(t *testing.T) {
	repo, _ := newTestRepo(t)

	doc, sha, err := repo.Load(context.Background())
	require.NoError(t, err, "missing document is not an error")
	assert.Nil(t, doc)
	assert.Empty(t, sha)
}

func TestLoad_EmptyFile(t *testing.T) {
	repo, srv := newTestRepo(t)
	seeded := srv.Seed(dbPath, []byte("  \n\t "))

	doc, sha, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, doc)
	assert.Equal(t, seeded, sha, "empty file still carries its version token")
}

func TestLoad_Corrupt(t *testing.T) {
	repo, srv := newTestRepo(t)
	srv.Seed(dbPath, []byte("this is not json {"))

	doc, _, err := repo.Load(context.Background())
	assert.Nil(t, doc, "corrupt content must not be silently defaulted")
	assert.ErrorIs(t, err, common.ErrorCorruptData)
}

func TestLoad_TransportErrorPropagates(t *testing.T) {
	repo, srv := newTestRepo(t)
	srv.Seed(dbPath, []byte("{}"))
	srv.FailNextGet(http.StatusInternalServerError)

	_, _, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrorNotFound))
	assert.False(t, errors.Is(err, common.ErrorCorruptData))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	doc := models.NewDocument()
	doc.Users = append(doc.Users, &models.User{
		Username: "zex",
		Password: "hash",
		HWID:     "HW-1",
		Expiry:   models.NeverExpires,
		Rank:     models.RankOwner,
		Status:   models.UserStatusActive,
	})
	doc.Keys = append(doc.Keys, &models.Key{
		Key:          "ABC",
		Status:       models.KeyStatusUnused,
		DurationDays: models.DurationDays(30),
	})

	sha, err := repo.Save(ctx, doc, "", "init")
	require.NoError(t, err)
	require.NotEmpty(t, sha)

	got, gotSHA, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sha, gotSHA)
	assert.Equal(t, doc, got)
	assert.Equal(t, models.NeverExpires, got.Users[0].Expiry)
}

func TestSave_StoredFileIsPrettyPrinted(t *testing.T) {
	repo, srv := newTestRepo(t)

	_, err := repo.Save(context.Background(), models.NewDocument(), "", "init")
	require.NoError(t, err)

	raw, ok := srv.Content(dbPath)
	require.True(t, ok)
	assert.Contains(t, string(raw), "\n  \"users\": []")

	var again models.Document
	require.NoError(t, json.Unmarshal(raw, &again))
}

func TestSave_StaleSHAFails(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	stale, err := repo.Save(ctx, models.NewDocument(), "", "init")
	require.NoError(t, err)

	doc := models.NewDocument()
	doc.Keys = append(doc.Keys, &models.Key{Key: "K", Status: models.KeyStatusUnused, DurationDays: models.DurationDays(1)})
	current, err := repo.Save(ctx, doc, stale, "advance")
	require.NoError(t, err)
	require.NotEqual(t, stale, current)

	_, err = repo.Save(ctx, models.NewDocument(), stale, "stale write")
	assert.ErrorIs(t, err, common.ErrVersionConflict)

	// the conflicting write must not have landed
	got, _, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Keys, 1)
}

func TestScenario_FreshStoreInit(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	doc, sha, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, doc)
	require.Empty(t, sha)

	doc = models.NewDocument()
	doc.Keys = append(doc.Keys, &models.Key{Key: "ABC", Status: models.KeyStatusUnused, DurationDays: models.DurationDays(30)})

	newSHA, err := repo.Save(ctx, doc, sha, "init")
	require.NoError(t, err)
	require.NotEmpty(t, newSHA)

	got, gotSHA, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, newSHA, gotSHA)
	assert.Equal(t, doc, got)
}

func TestScenario_TwoConcurrentWriters(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	v1, err := repo.Save(ctx, models.NewDocument(), "", "init")
	require.NoError(t, err)

	// both writers read v1
	docA, shaA, err := repo.Load(ctx)
	require.NoError(t, err)
	docB, shaB, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, v1, shaA)
	require.Equal(t, v1, shaB)

	docA.Users = append(docA.Users, &models.User{Username: "first"})
	v2, err := repo.Save(ctx, docA, shaA, "writer A")
	require.NoError(t, err)
	require.NotEqual(t, v1, v2)

	docB.Users = append(docB.Users, &models.User{Username: "second"})
	_, err = repo.Save(ctx, docB, shaB, "writer B")
	assert.ErrorIs(t, err, common.ErrVersionConflict)
}
