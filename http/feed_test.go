package http_test

import (
	"context"
	"errors"
	"testing"

	"github.com/garagekb/garagekb"
	gkhttp "github.com/garagekb/garagekb/http"
	"github.com/garagekb/garagekb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forumRSS = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <item>
      <title>No crank no start after battery swap</title>
      <description>Replaced the battery, now nothing. Checked the main fuse.</description>
      <link>https://forum.example.com/threads/no-crank.5512/</link>
      <guid>https://forum.example.com/threads/no-crank.5512/</guid>
      <pubDate>Mon, 13 Jul 2026 10:15:00 +0000</pubDate>
    </item>
    <item>
      <title>Grounding points diagram</title>
      <description>Where are the chassis grounds?</description>
      <link>https://forum.example.com/threads/grounds.5513/</link>
      <guid>https://forum.example.com/threads/grounds.5513/</guid>
      <pubDate>not a date at all</pubDate>
    </item>
    <item>
      <title>Third thread</title>
      <description>Filler.</description>
      <link>https://forum.example.com/threads/filler.5514/</link>
      <guid>https://forum.example.com/threads/filler.5514/</guid>
    </item>
  </channel>
</rss>`

const videoAtom = `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom"
      xmlns:yt="http://www.youtube.com/xml/schemas/2015"
      xmlns:media="http://search.yahoo.com/mrss/">
  <entry>
    <id>yt:video:k2jf8GbV5a0</id>
    <yt:videoId>k2jf8GbV5a0</yt:videoId>
    <title>Finding a parasitic draw with a multimeter</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=k2jf8GbV5a0"/>
    <published>2026-07-12T18:30:00+00:00</published>
    <media:group>
      <media:description>Step by step parasitic draw test.</media:description>
      <media:thumbnail url="https://i.ytimg.com/vi/k2jf8GbV5a0/hqdefault.jpg"/>
    </media:group>
  </entry>
</feed>`

func forumProfile() garagekb.SourceProfile {
	return garagekb.SourceProfile{Name: "Example Forum", Category: "Forums", Kind: garagekb.KindForum}
}

func TestFeedAdapter_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("maps RSS entries to raw items", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return forumRSS, nil
			},
		}
		adapter := gkhttp.NewFeedAdapter(fetcher, nil, forumProfile(), "https://forum.example.com/index.rss", 60)

		items, err := adapter.Fetch(context.Background())

		require.NoError(t, err)
		require.Len(t, items, 3)

		assert.Equal(t, "No crank no start after battery swap", items[0].Title)
		assert.Equal(t, "https://forum.example.com/threads/no-crank.5512/", items[0].Link)
		assert.Equal(t, "2026-07-13T10:15:00Z", items[0].Published, "source timestamp normalized to RFC 3339 UTC")
		assert.Equal(t, "no-crank.5512", items[0].NaturalKey, "guid tail is the natural key")
		assert.Equal(t, "Example Forum", items[0].Profile.Name)

		assert.Empty(t, items[1].Published, "unparseable timestamp becomes empty")
		assert.Empty(t, items[2].Published, "missing timestamp becomes empty")
	})

	t.Run("derives video natural keys and thumbnails", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return videoAtom, nil
			},
		}
		profile := garagekb.SourceProfile{Name: "YouTube", Category: "Video", Kind: garagekb.KindVideo, Trust: garagekb.TrustCurated}
		adapter := gkhttp.NewFeedAdapter(fetcher, nil, profile, "https://www.youtube.com/feeds/videos.xml?search_query=parasitic+draw", 10)

		items, err := adapter.Fetch(context.Background())

		require.NoError(t, err)
		require.Len(t, items, 1)

		assert.Equal(t, "k2jf8GbV5a0", items[0].NaturalKey)
		assert.Equal(t, "https://i.ytimg.com/vi/k2jf8GbV5a0/hqdefault.jpg", items[0].MediaURL)
		assert.Equal(t, "Step by step parasitic draw test.", items[0].Body)
	})

	t.Run("caps items per source", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return forumRSS, nil
			},
		}
		adapter := gkhttp.NewFeedAdapter(fetcher, nil, forumProfile(), "https://forum.example.com/index.rss", 2)

		items, err := adapter.Fetch(context.Background())

		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("dns failure")
			},
		}
		adapter := gkhttp.NewFeedAdapter(fetcher, nil, forumProfile(), "https://forum.example.com/index.rss", 60)

		_, err := adapter.Fetch(context.Background())

		assert.Error(t, err)
	})

	t.Run("waits on the domain limiter", func(t *testing.T) {
		t.Parallel()

		var waited string
		limiter := &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, domain string) error {
				waited = domain
				return nil
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return forumRSS, nil
			},
		}
		adapter := gkhttp.NewFeedAdapter(fetcher, limiter, forumProfile(), "https://forum.example.com/index.rss", 60)

		_, err := adapter.Fetch(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "forum.example.com", waited)
	})
}

func TestVideoIDFromLink(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc123XYZ_-", gkhttp.VideoIDFromLink("https://www.youtube.com/watch?v=abc123XYZ_-"))
	assert.Empty(t, gkhttp.VideoIDFromLink("https://www.youtube.com/feeds/videos.xml"))
	assert.Empty(t, gkhttp.VideoIDFromLink("https://example.com/watch?v=abc"))
	assert.Empty(t, gkhttp.VideoIDFromLink(""))
}

func TestNormalizeTime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2026-07-13T10:15:00Z", gkhttp.NormalizeTime("Mon, 13 Jul 2026 10:15:00 +0000"))
	assert.Equal(t, "2026-07-13T08:15:00Z", gkhttp.NormalizeTime("2026-07-13T10:15:00+02:00"))
	assert.Empty(t, gkhttp.NormalizeTime("yesterday"))
	assert.Empty(t, gkhttp.NormalizeTime(""))
}
