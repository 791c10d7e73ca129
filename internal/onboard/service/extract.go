package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/pkg/llmx"
	"github.com/fmalaspina/vallebot/pkg/retryx"
	"github.com/fmalaspina/vallebot/pkg/slogx"
)

// FallbackSystemPrompt instructs the model to answer with exactly the three
// known keys.
const FallbackSystemPrompt = `You extract registration data for a professional from a chat message, which may be written in Spanish or English.
Answer ONLY with a JSON object that has exactly these keys and string values:
{"name": "", "email": "", "bio": ""}
"name" is the person's full name, "email" their e-mail address and "bio" a short description of their profession or specialty.
Use an empty string for anything the message does not state. Do not add keys, comments or any other text.`

var (
	labelRe = regexp.MustCompile(`(?i)\b(name|nombre|e-?mail|correo(?:[ \t]+electr[oó]nico)?|bio|biograf[ií]a|specialty|especialidad|description|descripci[oó]n)[ \t]*:`)

	emailRe     = regexp.MustCompile(`^[\w.+-]+@[\w.-]+\.[A-Za-z]{2,}$`)
	bareEmailRe = regexp.MustCompile(`[\w.+-]+@[\w.-]+\.[A-Za-z]{2,}`)
)

// Extractor turns one message body into professional fields. LLM may be nil,
// which disables the fallback step.
type Extractor struct {
	LLM    llmx.Completer
	Policy retryx.Policy
}

// Extract never fails: a fallback that errors or answers with anything other
// than the expected object contributes no fields.
func (e *Extractor) Extract(ctx context.Context, text string) domain.ProfessionalFields {
	fields := ExtractLabelled(text)
	if _, ok := fields.Get(domain.FieldName); ok || e == nil || e.LLM == nil {
		return fields
	}

	fallback, ok := e.fallback(ctx, text)
	if !ok {
		return fields
	}
	return fields.FillGaps(fallback)
}

func (e *Extractor) fallback(ctx context.Context, text string) (domain.ProfessionalFields, bool) {
	log := slogx.FromContext(ctx)

	var raw string
	err := retryx.Do(ctx, e.Policy, func(ctx context.Context) error {
		out, err := e.LLM.Complete(ctx, FallbackSystemPrompt, text)
		if err != nil {
			return err
		}
		raw = out
		return nil
	}, func(err error, next time.Duration) {
		log.Warn("llm fallback attempt failed, retrying",
			slog.Duration("backoff", next),
			slog.Any("error", err),
		)
	})
	if err != nil {
		log.Warn("llm fallback unavailable, continuing without it", slog.Any("error", err))
		return domain.ProfessionalFields{}, false
	}

	fields, ok := ParseFallbackReply(raw)
	if !ok {
		log.Warn("llm fallback returned an invalid object", slog.Int("reply_len", len(raw)))
		return domain.ProfessionalFields{}, false
	}
	return fields, true
}

// ExtractLabelled matches "Label: value" pairs anywhere in the text. A value
// ends at the end of its line or at the next label. The first non-empty value
// per field wins; an unlabelled e-mail address anywhere in the text is used
// when no labelled one is valid.
func ExtractLabelled(text string) domain.ProfessionalFields {
	var out domain.ProfessionalFields

	locs := labelRe.FindAllStringSubmatchIndex(text, -1)
	for i, loc := range locs {
		field := labelField(text[loc[2]:loc[3]])
		if _, ok := out.Get(field); ok {
			continue
		}

		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		v := text[loc[1]:end]
		if nl := strings.IndexAny(v, "\r\n"); nl >= 0 {
			v = v[:nl]
		}
		v = strings.TrimRight(strings.TrimSpace(v), ",;| \t")
		if v == "" {
			continue
		}
		if field == domain.FieldEmail && !emailRe.MatchString(v) {
			continue
		}
		out.Set(field, v)
	}

	if _, ok := out.Get(domain.FieldEmail); !ok {
		if addr := bareEmailRe.FindString(text); addr != "" {
			out.Set(domain.FieldEmail, addr)
		}
	}
	return out
}

func labelField(label string) domain.Field {
	l := strings.ToLower(label)
	switch {
	case l == "name" || l == "nombre":
		return domain.FieldName
	case l == "email" || l == "e-mail" || strings.HasPrefix(l, "correo"):
		return domain.FieldEmail
	default:
		return domain.FieldBio
	}
}

// ParseFallbackReply accepts only a JSON object with exactly the keys name,
// email and bio, all strings. A surrounding code fence is tolerated. An
// e-mail value that does not look like an address is dropped.
func ParseFallbackReply(raw string) (domain.ProfessionalFields, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(llmx.StripCodeFence(raw)), &obj); err != nil {
		return domain.ProfessionalFields{}, false
	}
	if len(obj) != len(domain.KnownFields) {
		return domain.ProfessionalFields{}, false
	}

	var out domain.ProfessionalFields
	for _, f := range domain.KnownFields {
		rawVal, ok := obj[string(f)]
		if !ok {
			return domain.ProfessionalFields{}, false
		}
		rawVal = bytes.TrimSpace(rawVal)
		if len(rawVal) == 0 || rawVal[0] != '"' {
			return domain.ProfessionalFields{}, false
		}
		var s string
		if err := json.Unmarshal(rawVal, &s); err != nil {
			return domain.ProfessionalFields{}, false
		}
		if f == domain.FieldEmail && !emailRe.MatchString(strings.TrimSpace(s)) {
			continue
		}
		out.Set(f, s)
	}
	return out, true
}
