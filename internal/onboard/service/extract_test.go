package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/stretchr/testify/require"
)

func get(f domain.ProfessionalFields, field domain.Field) string {
	v, _ := f.Get(field)
	return v
}

func TestExtractLabelled(t *testing.T) {
	t.Parallel()

	t.Run("english labels", func(t *testing.T) {
		f := ExtractLabelled("Name: Ana López\nEmail: ana@example.com\nBio: Psychologist")
		require.Equal(t, "Ana López", get(f, domain.FieldName))
		require.Equal(t, "ana@example.com", get(f, domain.FieldEmail))
		require.Equal(t, "Psychologist", get(f, domain.FieldBio))
	})

	t.Run("spanish labels, case and bullets", func(t *testing.T) {
		f := ExtractLabelled("hola!\r\n- NOMBRE:  Carlos Ruiz \r\n* correo electrónico: c.ruiz+pro@mail.com.ar\r\nEspecialidad: kinesiología")
		require.Equal(t, "Carlos Ruiz", get(f, domain.FieldName))
		require.Equal(t, "c.ruiz+pro@mail.com.ar", get(f, domain.FieldEmail))
		require.Equal(t, "kinesiología", get(f, domain.FieldBio))
	})

	t.Run("empty label does not swallow next line", func(t *testing.T) {
		f := ExtractLabelled("Name:\nBio: Dentist")
		_, ok := f.Get(domain.FieldName)
		require.False(t, ok)
		require.Equal(t, "Dentist", get(f, domain.FieldBio))
	})

	t.Run("invalid labelled email falls back to bare address", func(t *testing.T) {
		f := ExtractLabelled("Email: not-an-email\nwrite me at ana@example.org please")
		require.Equal(t, "ana@example.org", get(f, domain.FieldEmail))
	})

	t.Run("label after a greeting on the same line", func(t *testing.T) {
		require.Equal(t, "Ana López", get(ExtractLabelled("Hola! Nombre: Ana López"), domain.FieldName))
		require.Equal(t, "Ana López", get(ExtractLabelled("Hola, quiero registrarme. Name: Ana López"), domain.FieldName))
	})

	t.Run("several labels on one line", func(t *testing.T) {
		f := ExtractLabelled("Name: Ana López Bio: Psychologist")
		require.Equal(t, "Ana López", get(f, domain.FieldName))
		require.Equal(t, "Psychologist", get(f, domain.FieldBio))

		f = ExtractLabelled("Nombre: Carlos Ruiz, email: carlos@example.com; especialidad: odontología")
		require.Equal(t, "Carlos Ruiz", get(f, domain.FieldName))
		require.Equal(t, "carlos@example.com", get(f, domain.FieldEmail))
		require.Equal(t, "odontología", get(f, domain.FieldBio))
	})

	t.Run("label inside a word is ignored", func(t *testing.T) {
		f := ExtractLabelled("Username: ana_l\nNombre: Ana")
		require.Equal(t, "Ana", get(f, domain.FieldName))
	})

	t.Run("inline name completes without a fallback", func(t *testing.T) {
		f := (&Extractor{}).Extract(context.Background(), "Hola! Nombre: Ana López")
		require.Equal(t, "Ana López", get(f, domain.FieldName))
	})

	t.Run("nothing recognised", func(t *testing.T) {
		require.True(t, ExtractLabelled("Hola, quiero registrarme").Empty())
	})
}

func TestParseFallbackReply(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		ok   bool
		want string
	}{
		{"exact object", `{"name":"Ana","email":"","bio":""}`, true, "Ana"},
		{"fenced object", "```json\n{\"name\":\"Ana\",\"email\":\"\",\"bio\":\"x\"}\n```", true, "Ana"},
		{"all empty", `{"name":"","email":"","bio":""}`, true, ""},
		{"extra key", `{"name":"Ana","email":"","bio":"","phone":"1"}`, false, ""},
		{"missing key", `{"name":"Ana","email":""}`, false, ""},
		{"wrong key", `{"nombre":"Ana","email":"","bio":""}`, false, ""},
		{"non-string value", `{"name":5,"email":"","bio":""}`, false, ""},
		{"null value", `{"name":null,"email":"","bio":""}`, false, ""},
		{"array", `["Ana"]`, false, ""},
		{"prose", `Sure! The name is Ana.`, false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, ok := ParseFallbackReply(tc.raw)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, get(f, domain.FieldName))
		})
	}

	t.Run("invalid email is dropped", func(t *testing.T) {
		f, ok := ParseFallbackReply(`{"name":"Ana","email":"ana at example","bio":""}`)
		require.True(t, ok)
		_, has := f.Get(domain.FieldEmail)
		require.False(t, has)
	})
}

func TestExtractFallback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("skipped when name found deterministically", func(t *testing.T) {
		llm := &stubCompleter{reply: `{"name":"Other","email":"","bio":""}`}
		f := (&Extractor{LLM: llm, Policy: fastRetry}).Extract(ctx, "Name: Ana")
		require.Equal(t, "Ana", get(f, domain.FieldName))
		require.Zero(t, llm.Calls())
	})

	t.Run("fills gaps only", func(t *testing.T) {
		llm := &stubCompleter{reply: `{"name":"Ana López","email":"other@example.com","bio":"Psychologist"}`}
		f := (&Extractor{LLM: llm, Policy: fastRetry}).Extract(ctx, "soy Ana\nEmail: ana@example.com")
		require.Equal(t, "Ana López", get(f, domain.FieldName))
		require.Equal(t, "ana@example.com", get(f, domain.FieldEmail))
		require.Equal(t, "Psychologist", get(f, domain.FieldBio))
		require.Equal(t, 1, llm.Calls())
	})

	t.Run("malformed reply yields deterministic fields only", func(t *testing.T) {
		llm := &stubCompleter{reply: `{"name":"Ana","extra":true}`}
		f := (&Extractor{LLM: llm, Policy: fastRetry}).Extract(ctx, "Bio: Dentist")
		_, ok := f.Get(domain.FieldName)
		require.False(t, ok)
		require.Equal(t, "Dentist", get(f, domain.FieldBio))
	})

	t.Run("transport errors are retried then ignored", func(t *testing.T) {
		llm := &stubCompleter{err: errors.New("timeout")}
		f := (&Extractor{LLM: llm, Policy: fastRetry}).Extract(ctx, "hola")
		require.True(t, f.Empty())
		require.Equal(t, fastRetry.Attempts, llm.Calls())
	})

	t.Run("nil extractor still parses labels", func(t *testing.T) {
		var ex *Extractor
		require.Equal(t, "Ana", get(ex.Extract(ctx, "Nombre: Ana"), domain.FieldName))
	})
}
