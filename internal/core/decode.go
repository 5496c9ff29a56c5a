package core

// decode.go turns uploaded bytes into the UTF-8 text the converter expects.
//
// Spreadsheet exports are not always UTF-8. The decoding order is:
//  1. An explicit encoding name, when the caller supplies one.
//  2. UTF-8, when the data carries a BOM or is already valid UTF-8. The BOM
//     is stripped.
//  3. Whatever chardet detects on the first few KB, restricted to the
//     single-byte charsets in charsetDecoders. Windows-1252 otherwise.
//
// Any byte sequence that still fails to decode becomes U+FFFD.

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrInputTooLarge is returned when text or an upload exceeds the configured limit.
	ErrInputTooLarge = errors.New("input too large")

	// ErrUnsupportedFile is returned for uploads that are not .csv or .txt files.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrNoFile is returned when an upload request carries no file.
	ErrNoFile = errors.New("no file provided")

	// ErrUnknownEncoding is returned for an encoding name x/text does not know.
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// allowedExtensions are the file types the input pane accepts.
var allowedExtensions = map[string]bool{
	".csv": true,
	".txt": true,
}

// detectPeekSize is how much of the input chardet inspects.
const detectPeekSize = 4096

// charsetDecoders maps chardet charset names to decoders.
var charsetDecoders = map[string]encoding.Encoding{
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-2":   charmap.ISO8859_2,
	"iso-8859-5":   charmap.ISO8859_5,
	"iso-8859-9":   charmap.ISO8859_9,
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"windows-1254": charmap.Windows1254,
	"koi8-r":       charmap.KOI8R,
}

// fallbackEncoding decodes invalid UTF-8 that chardet could not place.
var fallbackEncoding encoding.Encoding = charmap.Windows1252

// CheckFileName rejects file names whose extension the UI does not accept.
// An empty name is allowed for pasted or piped input.
func CheckFileName(name string) error {
	if name == "" {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %q (expected .csv or .txt)", ErrUnsupportedFile, name)
	}
	return nil
}

// ReadLimited reads all of r, failing with ErrInputTooLarge once more than
// max bytes arrive.
func ReadLimited(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrInputTooLarge, max)
	}
	return data, nil
}

// DecodeText converts raw bytes to UTF-8 text. encName may be empty to
// auto-detect; otherwise it is any WHATWG encoding label ("latin1",
// "windows-1251", "utf-8", ...).
func DecodeText(data []byte, encName string) (string, error) {
	if encName != "" {
		enc, err := htmlindex.Get(encName)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, encName)
		}
		if name, _ := htmlindex.Name(enc); name != "utf-8" {
			return transformString(enc.NewDecoder(), data)
		}
		return transformString(unicode.UTF8BOM.NewDecoder(), data)
	}

	if hasUTF8BOM(data) || utf8.Valid(data) {
		return transformString(unicode.UTF8BOM.NewDecoder(), data)
	}

	return transformString(detectEncoding(data).NewDecoder(), data)
}

// detectEncoding guesses a single-byte charset for data that is not UTF-8.
func detectEncoding(data []byte) encoding.Encoding {
	peek := data
	if len(peek) > detectPeekSize {
		peek = peek[:detectPeekSize]
	}

	res, err := chardet.NewTextDetector().DetectBest(peek)
	if err != nil || res == nil {
		return fallbackEncoding
	}
	if enc, ok := charsetDecoders[strings.ToLower(res.Charset)]; ok {
		return enc
	}
	return fallbackEncoding
}

func transformString(t transform.Transformer, data []byte) (string, error) {
	out, _, err := transform.Bytes(t, data)
	if err != nil {
		return "", fmt.Errorf("decode input: %w", err)
	}
	return string(bytes.ToValidUTF8(out, []byte("\uFFFD"))), nil
}

func hasUTF8BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}

// DownloadName derives the .json file name offered for download.
func DownloadName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "converted.json"
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\r', '\n':
			return '_'
		}
		return r
	}, base)
	if base == "" {
		return "converted.json"
	}
	return base + ".json"
}
