package pressroom

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/pressroom/meta"
)

func TestBuildFeed(t *testing.T) {
	cfg := SiteConfig{Name: "Blog", URL: "https://example.com", Description: "notes"}
	articles := []meta.Meta{
		{Title: "Zoned", Link: "/posts/z", Date: "2024-03-05T10:00:00+02:00", Tags: meta.TagSet{"go"}},
		{Title: "Undated", Link: "/posts/u", Date: "someday"},
	}

	feed := buildFeed(cfg, articles)
	assert.Equal(t, "2.0", feed.Version)
	assert.Equal(t, "notes", feed.Channel.Description)
	require.Len(t, feed.Channel.Items, 2)

	assert.Equal(t, "Tue, 05 Mar 2024 10:00:00 +0200", feed.Channel.Items[0].PubDate)
	assert.Equal(t, "https://example.com/posts/z", feed.Channel.Items[0].GUID)
	assert.Empty(t, feed.Channel.Items[1].PubDate)

	out, err := xml.Marshal(feed)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<pubDate></pubDate>")
	assert.Contains(t, string(out), "<category>go</category>")
}

func TestBuildFeedEmpty(t *testing.T) {
	feed := buildFeed(SiteConfig{Name: "Blog"}, nil)
	assert.Empty(t, feed.Channel.Items)
}
