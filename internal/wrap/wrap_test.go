package wrap

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// referenceHash is the rolling hash written out longhand on int64 so the
// truncation step is explicit.
func referenceHash(s string) uint32 {
	var h int64
	for _, r := range s {
		h = (h*31 + int64(r)) & 0xFFFFFFFF
	}
	return uint32(h)
}

type page struct {
	payload  string
	checksum string
	footer   string
	doc      *html.Node
}

func parsePage(t *testing.T, s string) page {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)

	p := page{doc: doc}
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				switch {
				case a.Key == "id" && a.Val == "login-form":
					for _, b := range n.Attr {
						switch b.Key {
						case "data-payload":
							p.payload = b.Val
						case "data-checksum":
							p.checksum = b.Val
						}
					}
				case a.Key == "class" && a.Val == "footer" && n.FirstChild != nil:
					p.footer = n.FirstChild.Data
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)
	return p
}

func TestChecksum(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 97*31 + 98},
		{"hello", 99162322},
		{"password", 1216985755},
		// above 2^31-1, where a signed client hash would go negative
		{"secret", 3388690096},
		{"correct horse battery staple", referenceHash("correct horse battery staple")},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Checksum(tt.in), "Checksum(%q)", tt.in)
	}
}

func TestChecksumMatchesReference(t *testing.T) {
	for _, s := range []string{"x", "pässwörd", "日本語", "emoji 🔑 key", strings.Repeat("z", 1000)} {
		require.Equal(t, referenceHash(s), Checksum(s), "Checksum(%q)", s)
		require.Equal(t, Checksum(s), Checksum(s))
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	listing := "<html><script>alert('x')</script>\"quotes\" &amp; ünïcödé</html>"
	payload := Encode(listing)
	require.NotContains(t, payload, "<")
	require.NotContains(t, payload, "\"")

	got, err := Decode(payload)
	require.NoError(t, err)
	require.Equal(t, listing, got)

	_, err = Decode("not base64!")
	require.Error(t, err)
}

func TestWrap(t *testing.T) {
	listing := `<li><a href="./secret-report.txt">secret-report.txt</a></li></script>`

	out, err := Wrap(listing, Options{Password: "hunter2", Footer: "ACME & Co"})
	require.NoError(t, err)

	require.Contains(t, out, `<form id="login-form"`)
	require.Contains(t, out, `type="password"`)
	require.NotContains(t, out, "secret-report")

	p := parsePage(t, out)
	require.Equal(t, strconv.FormatUint(uint64(referenceHash("hunter2")), 10), p.checksum)
	require.Equal(t, "ACME & Co", p.footer)

	decoded, err := Decode(p.payload)
	require.NoError(t, err)
	require.Equal(t, listing, decoded)
}

func TestWrapDefaultFooter(t *testing.T) {
	out, err := Wrap("x", Options{Password: "p"})
	require.NoError(t, err)
	require.Equal(t, DefaultFooter, parsePage(t, out).footer)
}

func TestWrapThemes(t *testing.T) {
	plain, err := Wrap("x", Options{Password: "p", Theme: ThemePlain})
	require.NoError(t, err)
	require.NotContains(t, plain, "@keyframes")

	animated, err := Wrap("x", Options{Password: "p", Theme: ThemeAnimated})
	require.NoError(t, err)
	require.Contains(t, animated, "@keyframes gradient")

	// both themes carry the same payload and checksum
	require.Equal(t, parsePage(t, plain).payload, parsePage(t, animated).payload)
	require.Equal(t, parsePage(t, plain).checksum, parsePage(t, animated).checksum)

	_, err = Wrap("x", Options{Password: "p", Theme: "neon"})
	require.Error(t, err)
}
