// Package wrap hides the top-level listing behind a password prompt.
//
// This is obfuscation, not confidentiality. The listing is base64 encoded
// and the password is reduced to a 32-bit rolling hash. Anyone can decode
// the page without the password by reading its source. Use it to keep
// casual visitors out, never to protect anything that matters.
package wrap

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"strconv"
)

// Themes for the login page.
const (
	ThemePlain    = "plain"
	ThemeAnimated = "animated"
)

// DefaultFooter is used when Options.Footer is empty.
const DefaultFooter = "(c) File Server"

//go:embed templates/login.html
var assets embed.FS

var loginTemplate = template.Must(template.ParseFS(assets, "templates/login.html"))

// Options configures Wrap.
type Options struct {
	Password string
	Footer   string
	Theme    string
}

type loginData struct {
	Payload  string
	Checksum string
	Footer   string
	Animated bool
}

// Checksum is the rolling hash the login page compares against:
// h = h*31 + codepoint over the password, wrapping at 32 bits.
func Checksum(password string) uint32 {
	var h uint32
	for _, r := range password {
		h = h*31 + uint32(r)
	}
	return h
}

// Encode turns a listing into the page payload. The base64 alphabet cannot
// close a script or attribute context.
func Encode(listing string) string {
	return base64.StdEncoding.EncodeToString([]byte(listing))
}

// Decode reverses Encode.
func Decode(payload string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode payload: %w", err)
	}
	return string(b), nil
}

// Wrap returns the login page embedding listing.
func Wrap(listing string, opts Options) (string, error) {
	data := loginData{
		Payload:  Encode(listing),
		Checksum: strconv.FormatUint(uint64(Checksum(opts.Password)), 10),
		Footer:   opts.Footer,
	}
	if data.Footer == "" {
		data.Footer = DefaultFooter
	}
	switch opts.Theme {
	case "", ThemePlain:
	case ThemeAnimated:
		data.Animated = true
	default:
		return "", fmt.Errorf("unknown theme %q", opts.Theme)
	}

	var buf bytes.Buffer
	if err := loginTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render login page: %w", err)
	}
	return buf.String(), nil
}
