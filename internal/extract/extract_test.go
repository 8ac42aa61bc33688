package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageTitleTrimmed(t *testing.T) {
	t.Parallel()

	title, _, err := Page([]byte("<html><head><title>  My Post \n</title></head><body></body></html>"))
	require.NoError(t, err)
	require.Equal(t, "My Post", title)
}

func TestPageMissingTitle(t *testing.T) {
	t.Parallel()

	title, _, err := Page([]byte("<html><body><h1>heading only</h1></body></html>"))
	require.NoError(t, err)
	require.Empty(t, title)
}

func TestPageLinkFiltering(t *testing.T) {
	t.Parallel()

	body := []byte(`<html><body>
		<a href="">empty</a>
		<a href="#top">fragment</a>
		<a href="/a">first</a>
		<a href="/a">duplicate</a>
	</body></html>`)

	_, links, err := Page(body)
	require.NoError(t, err)
	require.Equal(t, []string{"/a"}, links)
}

func TestPageKeepsTargetsVerbatim(t *testing.T) {
	t.Parallel()

	body := []byte(`<html><body><a href="relative/path">r</a><a href="https://other.example/x">abs</a></body></html>`)
	_, links, err := Page(body)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"relative/path", "https://other.example/x"}, links)
}

func TestPageNoLinks(t *testing.T) {
	t.Parallel()

	_, links, err := Page([]byte("<html><body><p>no anchors</p></body></html>"))
	require.NoError(t, err)
	require.Empty(t, links)
}

func TestPageIsPure(t *testing.T) {
	t.Parallel()

	body := []byte(`<html><head><title>T</title></head><body><a href="/b">b</a><a href="/a">a</a></body></html>`)
	title1, links1, err1 := Page(body)
	title2, links2, err2 := Page(body)
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, title1, title2)
	require.Equal(t, links1, links2)
}
