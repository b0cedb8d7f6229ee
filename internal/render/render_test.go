package render

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// countingRenderer counts calls and can be told to fail.
type countingRenderer struct {
	calls int
	err   error
}

func (r *countingRenderer) Render(markdown string) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return "<p>" + markdown + "</p>", nil
}

func TestHTML_Heading(t *testing.T) {
	out, err := NewHTML().Render("# Title\n\nbody")
	require.NoError(t, err)

	require.Contains(t, out, "<h1>Title</h1>")
	require.Contains(t, out, "<p>body</p>")
}

func TestHTML_LinkAndImage(t *testing.T) {
	out, err := NewHTML().Render("[text](url) ![alt](url)")
	require.NoError(t, err)

	require.Contains(t, out, `<a href="url">text</a>`)
	require.Contains(t, out, `<img src="url" alt="alt" />`)
}

func TestHTML_FencedCode(t *testing.T) {
	out, err := NewHTML().Render("```\ncode\n```")
	require.NoError(t, err)

	require.Contains(t, out, "<pre><code>code\n</code></pre>")
}

func TestHTML_GFM(t *testing.T) {
	out, err := NewHTML().Render("~~gone~~")
	require.NoError(t, err)

	require.Contains(t, out, "<del>gone</del>")
}

func TestHTML_RawHTMLOmitted(t *testing.T) {
	out, err := NewHTML().Render("<script>alert(1)</script>")
	require.NoError(t, err)

	require.NotContains(t, out, "<script>")
}

func TestHTML_Empty(t *testing.T) {
	out, err := NewHTML().Render("")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestFallback(t *testing.T) {
	require.Equal(t, "<pre>a &lt;b&gt; &amp; c</pre>", Fallback("a <b> & c"))
}

func TestMust_UsesFallbackOnError(t *testing.T) {
	r := &countingRenderer{err: errors.New("boom")}
	require.Equal(t, "<pre># x</pre>", Must(r, "# x"))

	ok := &countingRenderer{}
	require.Equal(t, "<p>y</p>", Must(ok, "y"))
}

func TestTerminal_Render(t *testing.T) {
	r, err := NewTerminal(80, "notty")
	require.NoError(t, err)
	require.Equal(t, 80, r.Width())
	require.Equal(t, "notty", r.Style())

	out, err := r.Render("# Title\n\n- item one\n- item two")
	require.NoError(t, err)

	stripped := stripANSI(out)
	require.Contains(t, stripped, "Title")
	require.Contains(t, stripped, "item one")
}

func TestTerminal_DefaultStyle(t *testing.T) {
	r, err := NewTerminal(40, "")
	require.NoError(t, err)
	require.Equal(t, "dark", r.Style())
}

func TestCached_MemoizesByContent(t *testing.T) {
	next := &countingRenderer{}
	c := NewCached(next, time.Minute)

	for i := 0; i < 3; i++ {
		out, err := c.Render("# Title")
		require.NoError(t, err)
		require.Equal(t, "<p># Title</p>", out)
	}
	_, err := c.Render("# Other")
	require.NoError(t, err)

	require.Equal(t, 2, next.calls)
	require.Equal(t, 2, c.Len())

	c.Reset()
	require.Equal(t, 0, c.Len())
}

func TestCached_ErrorsPassThrough(t *testing.T) {
	boom := errors.New("boom")
	c := NewCached(&countingRenderer{err: boom}, 0)

	_, err := c.Render("x")
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, c.Len())
}

func TestCached_DropsExpiredRenderings(t *testing.T) {
	c := NewCached(NewHTML(), 5*time.Millisecond)

	for i := 0; i < 200; i++ {
		_, err := c.Render(fmt.Sprintf("# Draft %d\n\n%s", i, strings.Repeat("body ", 100)))
		require.NoError(t, err)
	}
	require.Positive(t, c.Len())

	require.Eventually(t, func() bool { return c.Len() == 0 }, 2*time.Second, 5*time.Millisecond,
		"expired renderings must be released without waiting for the default cleanup interval")
}
