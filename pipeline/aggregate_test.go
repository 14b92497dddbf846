package pipeline_test

import (
	"testing"
	"time"

	"github.com/garagekb/garagekb"
	"github.com/garagekb/garagekb/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArticle(id, published string) *garagekb.Article {
	return &garagekb.Article{
		ID:          id,
		Title:       "Article " + id,
		Source:      "Source A",
		SourceType:  garagekb.KindForum,
		ContentType: garagekb.ContentForumPost,
		Category:    "Forums",
		ProblemTags: []string{garagekb.UncategorizedTag},
		Published:   published,
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("fails on empty input", func(t *testing.T) {
		t.Parallel()
		snap, err := pipeline.Aggregate(nil, 10, now)
		assert.Nil(t, snap)
		assert.Equal(t, garagekb.EUNAVAILABLE, garagekb.ErrorCode(err))
	})

	t.Run("sorts newest first with undated articles last", func(t *testing.T) {
		t.Parallel()
		articles := []*garagekb.Article{
			testArticle("old", "2026-01-01T00:00:00Z"),
			testArticle("undated", ""),
			testArticle("new", "2026-08-01T00:00:00Z"),
		}
		snap, err := pipeline.Aggregate(articles, 0, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"new", "old", "undated"}, articleIDs(snap.Articles))
	})

	t.Run("cap keeps the greatest published values", func(t *testing.T) {
		t.Parallel()
		articles := []*garagekb.Article{
			testArticle("a", "2026-01-01T00:00:00Z"),
			testArticle("b", "2026-03-01T00:00:00Z"),
			testArticle("c", "2026-02-01T00:00:00Z"),
		}
		snap, err := pipeline.Aggregate(articles, 2, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c"}, articleIDs(snap.Articles))
		assert.Equal(t, 2, snap.Stats.TotalArticles)
	})

	t.Run("equal timestamps keep input order", func(t *testing.T) {
		t.Parallel()
		articles := []*garagekb.Article{
			testArticle("first", "2026-05-01T00:00:00Z"),
			testArticle("second", "2026-05-01T00:00:00Z"),
		}
		snap, err := pipeline.Aggregate(articles, 0, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, articleIDs(snap.Articles))
	})

	t.Run("stamps version and last updated", func(t *testing.T) {
		t.Parallel()
		snap, err := pipeline.Aggregate([]*garagekb.Article{testArticle("a", "")}, 0, now)
		require.NoError(t, err)
		assert.Equal(t, garagekb.SnapshotVersion, snap.Version)
		assert.Equal(t, "2026-08-30T12:00:00Z", snap.LastUpdated)
	})
}

func TestAggregate_Indexes(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	video := &garagekb.Article{
		ID:          "yt_1",
		Title:       "P0300 misfire diagnosis",
		Source:      "ChrisFix",
		SourceType:  garagekb.KindVideo,
		ContentType: garagekb.ContentVideo,
		Category:    "Video Tutorials",
		ProblemTags: []string{"engine"},
		ErrorCodes:  []string{"P0300"},
		Brands:      []string{"toyota"},
		Published:   "2026-06-01T00:00:00Z",
	}
	forum := &garagekb.Article{
		ID:          "forum_1",
		Title:       "No crank after sitting",
		Source:      "2CarPros",
		SourceType:  garagekb.KindForum,
		ContentType: garagekb.ContentForumPost,
		Category:    "Forums",
		ProblemTags: []string{"no-start", "electrical"},
		Brands:      []string{"kia", "toyota"},
		Published:   "2026-05-01T00:00:00Z",
	}

	snap, err := pipeline.Aggregate([]*garagekb.Article{video, forum}, 0, now)
	require.NoError(t, err)

	t.Run("every id in an index exists in articles", func(t *testing.T) {
		t.Parallel()
		known := make(map[string]bool)
		for _, a := range snap.Articles {
			known[a.ID] = true
		}
		for _, index := range []map[string][]string{
			snap.Indexes.Categories, snap.Indexes.Sources, snap.Indexes.Types,
			snap.Indexes.Brands, snap.Indexes.ErrorCodes, snap.Indexes.Problems,
		} {
			for key, ids := range index {
				for _, id := range ids {
					assert.True(t, known[id], "index key %q references unknown id %q", key, id)
				}
			}
		}
	})

	t.Run("every article appears under its own attributes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"yt_1"}, snap.Indexes.Categories["Video Tutorials"])
		assert.Equal(t, []string{"forum_1"}, snap.Indexes.Sources["2CarPros"])
		assert.Equal(t, []string{"yt_1"}, snap.Indexes.Types["video"])
		assert.Equal(t, []string{"forum_1"}, snap.Indexes.Types["forum-post"])
		assert.ElementsMatch(t, []string{"yt_1", "forum_1"}, snap.Indexes.Brands["toyota"])
		assert.Equal(t, []string{"forum_1"}, snap.Indexes.Brands["kia"])
		assert.Equal(t, []string{"yt_1"}, snap.Indexes.ErrorCodes["P0300"])
		assert.Equal(t, []string{"forum_1"}, snap.Indexes.Problems["no-start"])
		assert.Equal(t, []string{"forum_1"}, snap.Indexes.Problems["electrical"])
		assert.Equal(t, []string{"yt_1"}, snap.Indexes.Problems["engine"])
	})

	t.Run("stats count only retained articles", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 2, snap.Stats.TotalArticles)
		assert.Equal(t, 2, snap.Stats.TotalCategories)
		assert.Equal(t, 2, snap.Stats.TotalSources)
		assert.Equal(t, 2, snap.Stats.TotalBrands)
		assert.Equal(t, 1, snap.Stats.TotalErrorCodes)
		assert.Equal(t, 1, snap.Stats.Videos)
		assert.Equal(t, 1, snap.Stats.Forums)
		assert.Zero(t, snap.Stats.Articles)
		assert.Zero(t, snap.Stats.Community)
	})
}

func articleIDs(articles []*garagekb.Article) []string {
	ids := make([]string, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}
	return ids
}
