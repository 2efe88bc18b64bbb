package extract_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bennypowers.dev/vhls/internal/catalog"
	"bennypowers.dev/vhls/internal/documents"
	"bennypowers.dev/vhls/internal/extract"
	"bennypowers.dev/vhls/internal/highlight"
	"bennypowers.dev/vhls/internal/markup"
	"bennypowers.dev/vhls/internal/position"
	"bennypowers.dev/vhls/internal/uriutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const translatedComponent = `import { useTranslations } from "@vocab/react";
import translations from "./.vocab";
import React from "react";

const MyComponent = (props: { name: string }) => {
  const { t } = useTranslations(translations);
  const someText = "This is some text";
  return (
    <div foo="bar" label={` + "`My name is ${props.name}!`" + `}>
      This is a relatively long line of text. This is some padding at the end.
      I am a paragraph with some <b>bold</b> text and {someText}
    </div>
  );
};
`

func rangeOf(t *testing.T, doc *documents.Document, line int, needle string) position.Range {
	t.Helper()
	text := doc.LineText(line)
	idx := strings.Index(text, needle)
	require.GreaterOrEqual(t, idx, 0, "%q not found on line %d", needle, line)
	start := position.StringLengthUTF16(text[:idx])
	return position.Range{
		Start: position.Position{Line: line, Character: start},
		End:   position.Position{Line: line, Character: start + position.StringLengthUTF16(needle)},
	}
}

func TestAnalyse(t *testing.T) {
	doc := documents.NewDocument("file:///src/MyComponent.tsx", "typescriptreact", 1, translatedComponent)
	opts := extract.Options{Dialect: markup.DialectTSX}

	tests := []struct {
		name            string
		line            int
		needle          string
		wantKind        highlight.Kind
		wantKey         string
		wantMessage     string
		wantReplacement string
	}{
		{
			name:            "string constant",
			line:            6,
			needle:          `"This is some text"`,
			wantKind:        highlight.StringLiteral,
			wantKey:         "This is some text",
			wantMessage:     "This is some text",
			wantReplacement: `t("This is some text")`,
		},
		{
			name:            "prop value",
			line:            8,
			needle:          "bar",
			wantKind:        highlight.PropValueStringLiteral,
			wantKey:         "bar",
			wantMessage:     "bar",
			wantReplacement: `{t("bar")}`,
		},
		{
			name:            "prop template string",
			line:            8,
			needle:          "My name is ${props.name}!",
			wantKind:        highlight.PropValueTemplateLiteral,
			wantKey:         "My name is propsName!",
			wantMessage:     "My name is {propsName}!",
			wantReplacement: `t("My name is propsName!", { propsName: props.name })`,
		},
		{
			name:            "jsx text",
			line:            9,
			needle:          "This is a relatively long line of text. This is some padding at the end.",
			wantKind:        highlight.JSXStringLiteral,
			wantKey:         "This is a relatively long line of text. This is some padding at the end.",
			wantMessage:     "This is a relatively long line of text. This is some padding at the end.",
			wantReplacement: `{t("This is a relatively long line of text. This is some padding at the end.")}`,
		},
		{
			name:            "complex jsx",
			line:            10,
			needle:          "I am a paragraph with some <b>bold</b> text and {someText}",
			wantKind:        highlight.ComplexJSX,
			wantKey:         "I am a paragraph with some bold text and someText",
			wantMessage:     "I am a paragraph with some <b>bold</b> text and {someText}",
			wantReplacement: `{t("I am a paragraph with some bold text and someText", { b: (children) => <b>{children}</b>, someText })}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := extract.Analyse(doc, rangeOf(t, doc, tt.line, tt.needle), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, h.Kind)

			key, entry := h.CatalogEntry(0)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, catalog.Entry{Message: tt.wantMessage}, entry)
			assert.Equal(t, tt.wantReplacement, h.Replacement("", 0))
		})
	}
}

func TestTruncatedKeys(t *testing.T) {
	doc := documents.NewDocument("file:///src/MyComponent.tsx", "typescriptreact", 1, translatedComponent)
	sel := rangeOf(t, doc, 9, "This is a relatively long line of text. This is some padding at the end.")

	h, err := extract.Analyse(doc, sel, extract.Options{Dialect: markup.DialectTSX})
	require.NoError(t, err)

	key, entry := h.CatalogEntry(20)
	assert.Equal(t, "This is a relatively...", key)
	assert.Equal(t, "This is a relatively long line of text. This is some padding at the end.", entry.Message, "messages are never truncated")
	assert.Equal(t, `{t("This is a relatively...")}`, h.Replacement("", 20))

	key, _ = h.CatalogEntry(10)
	assert.Equal(t, "This is a...", key, "no space before the ellipsis")

	complexSel := rangeOf(t, doc, 10, "I am a paragraph with some <b>bold</b> text and {someText}")
	complexH, err := extract.Analyse(doc, complexSel, extract.Options{Dialect: markup.DialectTSX})
	require.NoError(t, err)
	key, _ = complexH.CatalogEntry(5)
	assert.Equal(t, "I am a paragraph with some bold text and someText", key, "transformed keys are never truncated")
}

func TestAnalyseErrors(t *testing.T) {
	doc := documents.NewDocument("file:///src/C.jsx", "javascriptreact", 1, "const C = () => <p>Hello {name()} there</p>;\n")

	_, err := extract.Analyse(doc, rangeOf(t, doc, 0, "Hello {name()} there"), extract.Options{})
	assert.ErrorIs(t, err, markup.ErrUnsupported)

	empty := position.Range{Start: position.Position{Line: 0, Character: 3}, End: position.Position{Line: 0, Character: 3}}
	_, err = extract.Analyse(doc, empty, extract.Options{})
	assert.Error(t, err)
}

func TestPlanInsertsHook(t *testing.T) {
	dir := t.TempDir()
	componentPath := filepath.Join(dir, "nonTranslatedFile.tsx")
	content := `import React from "react";

const MyComponent = () => {
  return <div>Test</div>;
};
`
	doc := documents.NewDocument(uriutil.PathToURI(componentPath), "typescriptreact", 1, content)

	plan, err := extract.NewPlan(doc, rangeOf(t, doc, 3, "Test"), extract.Options{Dialect: markup.DialectTSX})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".vocab", "translations.json"), plan.CatalogPath)
	assert.Len(t, plan.Edits, 3)

	got, err := plan.Apply(doc)
	require.NoError(t, err)
	assert.Equal(t, `import { useTranslations } from '@vocab/react';
import translations from './.vocab';
import React from "react";

const MyComponent = () => {
  const { t } = useTranslations(translations);
  return <div>{t("Test")}</div>;
};
`, got)

	require.NoError(t, plan.WriteCatalog(false))
	data, err := os.ReadFile(plan.CatalogPath)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"Test\": {\n    \"message\": \"Test\"\n  }\n}", string(data))
}

func TestPlanSkipsHookWhenPresent(t *testing.T) {
	doc := documents.NewDocument("file:///src/MyComponent.tsx", "typescriptreact", 1, translatedComponent)

	plan, err := extract.NewPlan(doc, rangeOf(t, doc, 8, "bar"), extract.Options{Dialect: markup.DialectTSX})
	require.NoError(t, err)
	require.Len(t, plan.Edits, 1)

	got, err := plan.Apply(doc)
	require.NoError(t, err)
	assert.Contains(t, got, `<div foo={t("bar")} label=`)
}

func TestPlanCustomCalleeAndCatalogDir(t *testing.T) {
	content := "function Page() {\n  return <p>Welcome</p>;\n}\n"
	doc := documents.NewDocument("file:///app/Page.jsx", "javascriptreact", 1, content)

	plan, err := extract.NewPlan(doc, rangeOf(t, doc, 1, "Welcome"), extract.Options{
		Callee:     "translate",
		CatalogDir: "i18n",
	})
	require.NoError(t, err)

	got, err := plan.Apply(doc)
	require.NoError(t, err)
	assert.Equal(t, `import { useTranslations } from '@vocab/react';
import translations from './i18n';
function Page() {
  const { t: translate } = useTranslations(translations);
  return <p>{translate("Welcome")}</p>;
}
`, got)
	assert.Equal(t, filepath.Join("/app", "i18n", "translations.json"), plan.CatalogPath)
}

func TestPlanFallsBackToSelectionLine(t *testing.T) {
	content := "export default <p>Hello</p>;\n"
	doc := documents.NewDocument("file:///app/Hello.jsx", "javascriptreact", 1, content)

	plan, err := extract.NewPlan(doc, rangeOf(t, doc, 0, "Hello"), extract.Options{})
	require.NoError(t, err)

	got, err := plan.Apply(doc)
	require.NoError(t, err)
	assert.Equal(t, `import { useTranslations } from '@vocab/react';
import translations from './.vocab';
const { t } = useTranslations(translations);
export default <p>{t("Hello")}</p>;
`, got)
}

func TestPlanHookOnBracketLine(t *testing.T) {
	const imports = "import { useTranslations } from '@vocab/react';\nimport translations from './.vocab';\n"

	tests := []struct {
		name    string
		content string
		line    int
		want    string
	}{
		{
			name:    "one-line arrow component",
			content: "const C = () => { return <p>Hello</p>; };",
			want: "const C = () => {\n" +
				"  const { t } = useTranslations(translations);\n" +
				"  return <p>{t(\"Hello\")}</p>; };",
		},
		{
			name:    "return on the bracket line",
			content: "function Page() { return <p>Hello</p>;\n}\n",
			want: "function Page() {\n" +
				"  const { t } = useTranslations(translations);\n" +
				"  return <p>{t(\"Hello\")}</p>;\n}\n",
		},
		{
			name:    "indented method",
			content: "class A {\n  render() { return <p>Hello</p>; }\n}\n",
			line:    1,
			want: "class A {\n  render() {\n" +
				"    const { t } = useTranslations(translations);\n" +
				"    return <p>{t(\"Hello\")}</p>; }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := documents.NewDocument("file:///app/C.jsx", "javascriptreact", 1, tt.content)

			plan, err := extract.NewPlan(doc, rangeOf(t, doc, tt.line, "Hello"), extract.Options{})
			require.NoError(t, err)

			got, err := plan.Apply(doc)
			require.NoError(t, err)
			assert.Equal(t, imports+tt.want, got)
		})
	}
}
