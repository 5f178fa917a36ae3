package fetcher

import (
	"bytes"
	"mime"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// LegacyEncoding is the name reported for content decoded as Shift_JIS.
// The x/text decoder covers the Windows-31J (CP932) extensions used by 5ch.
const LegacyEncoding = "shift_jis"

// decodeLegacy decodes body as Shift_JIS. Invalid byte sequences are replaced
// with U+FFFD; lossy reports whether that happened.
func decodeLegacy(body []byte) (text string, lossy bool) {
	return decodeWith(japanese.ShiftJIS, body)
}

// decodeWith decodes body with enc. The x/text decoders write U+FFFD for
// invalid sequences; if a decoder gives up instead, the text decoded so far
// is kept and the rest is replaced by a single U+FFFD.
func decodeWith(enc encoding.Encoding, body []byte) (string, bool) {
	out, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return string(out) + string(utf8.RuneError), true
	}
	return string(out), bytes.ContainsRune(out, utf8.RuneError) && !bytes.ContainsRune(body, utf8.RuneError)
}

// declaredCharset extracts the charset parameter from a Content-Type value.
// It returns an empty string when none is declared.
func declaredCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["charset"])
}

// decodePage decodes a rendered page. Pages that declare no charset, or the
// HTTP default ISO-8859-1 that servers send when they omit one, are treated
// as Shift_JIS; any other declared charset is trusted.
func decodePage(contentType string, body []byte) (text, name string, lossy bool) {
	label := declaredCharset(contentType)
	if label == "" || strings.EqualFold(label, "iso-8859-1") {
		text, lossy = decodeLegacy(body)
		return text, LegacyEncoding, lossy
	}

	enc, canonical := charset.Lookup(label)
	if enc == nil {
		text, lossy = decodeLegacy(body)
		return text, LegacyEncoding, lossy
	}

	text, lossy = decodeWith(enc, body)
	return text, canonical, lossy
}
