package log

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// credentialKeys are attribute keys (lowercase) that always carry secrets.
// "seed" is deliberately absent: in this tool it is a crawl seed URL.
var credentialKeys = map[string]struct{}{
	"authorization":       {},
	"proxy-authorization": {},
	"cookie":              {},
	"set-cookie":          {},
	"x-api-key":           {},
	"x-auth-token":        {},
	"password":            {},
	"passwd":              {},
	"api_key":             {},
	"apikey":              {},
	"session":             {},
	"session_id":          {},
	"sessionid":           {},
	"sid":                 {},
}

// credentialFragments mark a key as sensitive when contained anywhere in it.
var credentialFragments = []string{"password", "secret", "token", "credential", "auth"}

// credentialValues match values that are credentials regardless of key.
var credentialValues = []*regexp.Regexp{
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),
}

// sensitiveQueryParams are masked inside URL valued attributes.
var sensitiveQueryParams = []string{"token", "key", "sig", "signature", "session", "auth", "password"}

// RedactingHandler wraps an slog.Handler and masks credentials in attributes
// before passing records on.
//
// Design decision: A handler wrapper keeps every call site on the plain
// slog API, and works for both the text and JSON output handlers.
type RedactingHandler struct {
	next slog.Handler
}

// NewRedactingHandler wraps next. A nil next falls back to slog.Default().Handler().
func NewRedactingHandler(next slog.Handler) *RedactingHandler {
	if next == nil {
		next = slog.Default().Handler()
	}
	return &RedactingHandler{next: next}
}

// Enabled delegates to the wrapped handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle rebuilds the record with redacted attributes.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(redactAttr(a))
		return true
	})
	return h.next.Handle(ctx, out)
}

// WithAttrs redacts attrs before attaching them.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = redactAttr(a)
	}
	return &RedactingHandler{next: h.next.WithAttrs(clean)}
}

// WithGroup returns a handler that nests attributes under name.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{next: h.next.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		clean := make([]slog.Attr, len(group))
		for i, g := range group {
			clean[i] = redactAttr(g)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clean...)}
	}

	if isCredentialKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}
	s := a.Value.String()
	for _, re := range credentialValues {
		if re.MatchString(s) {
			return slog.String(a.Key, MaskValue)
		}
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return slog.String(a.Key, RedactURL(s))
	}
	return a
}

func isCredentialKey(key string) bool {
	k := strings.ToLower(key)
	if _, ok := credentialKeys[k]; ok {
		return true
	}
	for _, f := range credentialFragments {
		if strings.Contains(k, f) {
			return true
		}
	}
	return false
}

// RedactURL masks sensitive query parameters and userinfo passwords in raw.
// Unparseable input and URLs without anything to mask are returned unchanged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	changed := false
	if u.User != nil {
		if _, has := u.User.Password(); has {
			u.User = url.UserPassword(u.User.Username(), MaskValue)
			changed = true
		}
	}

	if u.RawQuery != "" {
		q := u.Query()
		for name := range q {
			if isSensitiveParam(name) {
				q.Set(name, MaskValue)
				changed = true
			}
		}
		if changed {
			u.RawQuery = q.Encode()
		}
	}

	if !changed {
		return raw
	}
	return u.String()
}

func isSensitiveParam(name string) bool {
	n := strings.ToLower(name)
	for _, p := range sensitiveQueryParams {
		if strings.Contains(n, p) {
			return true
		}
	}
	return false
}

func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewLogger returns a text logger writing to w. Verbose enables debug records;
// otherwise progress at info level and above is shown.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelFor(verbose)})
	return slog.New(NewRedactingHandler(h))
}

// NewJSONLogger is like NewLogger but emits JSON lines.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelFor(verbose)})
	return slog.New(NewRedactingHandler(h))
}
