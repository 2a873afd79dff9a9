// Package httpcodec parses and formats HTTP/1.1 messages, grounded on the
// original httppo project's src/protocol.c. Parsing intentionally mirrors
// that algorithm byte-for-byte, including its quirks, rather than adopting
// net/http's more permissive grammar: header values keep whatever
// whitespace follows the colon, and any line missing a "\r\n\r\n"
// terminator or a ':' separator is rejected rather than guessed at.
package httpcodec

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/atmatm9182/httppo-go/internal/arena"
	"github.com/atmatm9182/httppo-go/internal/strbuilder"
	"github.com/atmatm9182/httppo-go/internal/strmap"
)

// ErrMalformedBody is returned when the request has no "\r\n\r\n"
// header/body terminator at all.
var ErrMalformedBody = errors.New("httpcodec: malformed body")

// ErrMalformedHeaders is returned when the header block doesn't split
// into a request line plus zero or more "key: value" lines.
var ErrMalformedHeaders = errors.New("httpcodec: malformed headers")

// MaxRequestSize is the default size of a single recv. Parse itself does
// not consult it; Server.Serve overwrites it with Config.MaxRequestSize,
// which is why it is a var rather than a const.
var MaxRequestSize = 1024

// Request is a parsed HTTP/1.1 request. Method, Path, Version, and every
// header key/value are arena-owned strings: they stay valid only for the
// lifetime of the arena passed to Parse.
type Request struct {
	Method  string
	Path    string
	Version string
	Headers *strmap.Map[string]
	Body    []byte
}

// Response is an HTTP/1.1 response awaiting encoding. Headers is optional;
// a nil map formats as "no extra headers".
type Response struct {
	StatusCode int
	Headers    *strmap.Map[string]
	Body       []byte
}

var crlf = []byte("\r\n")
var crlfcrlf = []byte("\r\n\r\n")

// Parse splits data into a request line, headers, and body, copying every
// retained piece into a so callers can discard or reuse data immediately
// after the call returns.
//
// The algorithm is the source's: find the first "\r\n\r\n" to separate
// headers from body, split the header block's first line on "\r\n" to
// isolate the request line, split the request line on its first two
// spaces, then split every remaining header line on its first ':'. Header
// values are NOT trimmed of leading whitespace, matching the source.
func Parse(data []byte, a *arena.Arena) (*Request, error) {
	headerEnd := bytes.Index(data, crlfcrlf)
	if headerEnd == -1 {
		return nil, ErrMalformedBody
	}

	headerBlock := data[:headerEnd]
	body := data[headerEnd+4:]

	requestLine := headerBlock
	var rest []byte
	if lineEnd := bytes.Index(headerBlock, crlf); lineEnd != -1 {
		requestLine = headerBlock[:lineEnd]
		rest = headerBlock[lineEnd+2:]
	}

	sp := bytes.IndexByte(requestLine, ' ')
	if sp == -1 {
		return nil, ErrMalformedHeaders
	}
	method := requestLine[:sp]
	requestLine = requestLine[sp+1:]

	sp = bytes.IndexByte(requestLine, ' ')
	if sp == -1 {
		return nil, ErrMalformedHeaders
	}
	path := requestLine[:sp]
	version := requestLine[sp+1:]

	headers := strmap.New[string]()
	for len(rest) > 0 {
		end := bytes.Index(rest, crlf)
		var line []byte
		if end == -1 {
			line = rest
			rest = nil
		} else {
			line = rest[:end]
			rest = rest[end+2:]
		}

		colon := bytes.IndexByte(line, ':')
		if colon == -1 {
			return nil, ErrMalformedHeaders
		}

		key := a.AllocString(string(line[:colon]))
		value := a.AllocString(string(line[colon+1:]))
		headers.Set(key, value)
	}

	return &Request{
		Method:  a.AllocString(string(method)),
		Path:    a.AllocString(string(path)),
		Version: a.AllocString(string(version)),
		Headers: headers,
		Body:    a.AllocBytes(body),
	}, nil
}

// Format writes resp's status line, headers, a Content-Length computed
// from len(resp.Body), and the body into w.
func Format(w *strbuilder.Builder, resp *Response) {
	w.AppendString("HTTP/1.1 ").
		AppendInt(resp.StatusCode).
		AppendString(" ").
		AppendString(StatusText(resp.StatusCode)).
		AppendCRLF()

	if resp.Headers != nil {
		resp.Headers.Each(func(key, value string) {
			w.AppendString(key).AppendString(": ").AppendString(value).AppendCRLF()
		})
	}

	w.AppendString("Content-Length: ").AppendInt(len(resp.Body)).AppendCRLF()
	w.AppendCRLF()
	if len(resp.Body) > 0 {
		w.AppendBytes(resp.Body)
	}
}

// StatusText returns the reason phrase for code, or the decimal code
// itself if no phrase is registered for it.
func StatusText(code int) string {
	switch code {
	case 200:
		return "OK"
	case 304:
		return "Not Modified"
	case 400:
		return "Bad request"
	case 403:
		return "Forbidden"
	case 404:
		return "Not found"
	case 405:
		return "Method Not Allowed"
	case 413:
		return "Payload Too Large"
	case 500:
		return "Internal Server Error"
	default:
		return strconv.Itoa(code)
	}
}
