package crawler

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return d
}

func TestParseListing(t *testing.T) {
	t.Parallel()

	entries := parseListing(doc(t, string(fixture(t, "listing.html"))))
	assert.Equal(t, []listingEntry{
		{id: "oAbc1", title: "Backend Engineer"},
		{id: "oXyz2", title: "Data Analyst"},
	}, entries)
}

func TestIDFromHref(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/leantechio/job/oAbc1":                       "oAbc1",
		"https://jobs.jobvite.com/x/job/oAbc1?src=li": "oAbc1",
		"oAbc1":          "oAbc1",
		"/leantechio/":   "",
		"":               "",
		"%zz/job/broken": "",
	}
	for href, want := range tests {
		assert.Equal(t, want, idFromHref(href), href)
	}
}

func TestShowMoreLinks(t *testing.T) {
	t.Parallel()

	base, _ := url.Parse("https://jobs.example.com/leantechio/")
	d := doc(t, `<a href="?p=2">Show More</a>
		<a href="javascript:void(0)">Show More</a>
		<a href="/other">Other</a>
		<a href="https://jobs.example.com/leantechio/?p=3#top"><span>Show More</span></a>`)

	var got []string
	for _, u := range showMoreLinks(d, base) {
		got = append(got, u.String())
	}
	assert.Equal(t, []string{
		"https://jobs.example.com/leantechio/?p=2",
		"https://jobs.example.com/leantechio/?p=3",
	}, got)
}

func TestSameSite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want bool
	}{
		{"https://jobs.jobvite.com/a", "https://app.jobvite.com/b", true},
		{"https://jobs.jobvite.com/a", "https://jobvite.com.evil.io/b", false},
		{"https://a.example.co.uk", "https://b.example.co.uk", true},
		{"https://a.example.co.uk", "https://b.other.co.uk", false},
		{"http://127.0.0.1:8080", "http://127.0.0.1:9090", true},
		{"http://127.0.0.1", "http://127.0.0.2", false},
		{"http://localhost", "http://LOCALHOST:1", true},
	}
	for _, tt := range tests {
		a, _ := url.Parse(tt.a)
		b, _ := url.Parse(tt.b)
		assert.Equal(t, tt.want, sameSite(a, b), "%s vs %s", tt.a, tt.b)
	}
}

func TestParseDetail(t *testing.T) {
	t.Parallel()

	t.Run("description and meta", func(t *testing.T) {
		t.Parallel()
		d, err := parseDetail(doc(t, string(fixture(t, "detail.html"))))
		require.NoError(t, err)
		assert.Equal(t, `<p style="none">Build<strong>APIs</strong> &amp; services</p>`, d.description)
		assert.Equal(t, "Engineering", d.sector)
		assert.Equal(t, "Remote", d.workMode)
		assert.Equal(t, "Brazil", d.country)
	})

	t.Run("missing meta", func(t *testing.T) {
		t.Parallel()
		d, err := parseDetail(doc(t, string(fixture(t, "detail_no_meta.html"))))
		require.NoError(t, err)
		assert.Equal(t, "<p>Analyse data</p>", d.description)
		assert.Empty(t, d.sector)
	})

	t.Run("missing description", func(t *testing.T) {
		t.Parallel()
		_, err := parseDetail(doc(t, `<div class="jv-job-detail-meta">Sales</div>`))
		assert.ErrorIs(t, err, errNoDescription)
	})
}

func TestSplitMeta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want []string
	}{
		{"Engineering<span></span>Remote, Brazil", []string{"Engineering", "Remote", "Brazil"}},
		{"Sales &amp; Marketing | Hybrid", []string{"Sales & Marketing", "Hybrid"}},
		{"<b>Only</b>", []string{"Only"}},
		{" , | ", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitMeta(tt.raw), tt.raw)
	}
}
