package sitedata

import (
	"testing"
	"time"

	"github.com/arthur-debert/pubtree/pkg/errors"
	"github.com/arthur-debert/pubtree/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PreservesOrderAndKinds(t *testing.T) {
	tree, err := Parse([]byte(`
title: Home
nav:
  - "{{title}}"
  - About
count: 3
ratio: 1.5
draft: false
published: 2021-03-04
empty:
`))
	require.NoError(t, err)

	assert.Equal(t, KindMapping, tree.Kind())
	assert.Equal(t, []string{"title", "nav", "count", "ratio", "draft", "published", "empty"}, tree.Keys())

	nav, ok := tree.Get("nav")
	require.True(t, ok)
	assert.Equal(t, KindSequence, nav.Kind())
	assert.Equal(t, 2, nav.Len())
	assert.Equal(t, "{{title}}", nav.Items()[0].Value())

	count, _ := tree.Get("count")
	assert.Equal(t, 3, count.Value())

	published, _ := tree.Get("published")
	date, ok := published.Value().(time.Time)
	require.True(t, ok, "timestamps should decode to time.Time, got %T", published.Value())
	assert.Equal(t, 2021, date.Year())

	empty, _ := tree.Get("empty")
	assert.Nil(t, empty.Value())
}

func TestParse_AliasesAndMerge(t *testing.T) {
	tree, err := Parse([]byte(`
base: &base
  layout: kit
  lang: de
page:
  <<: *base
  lang: en
copy: *base
`))
	require.NoError(t, err)

	page, _ := tree.Get("page")
	lang, _ := page.Get("lang")
	layout, _ := page.Get("layout")
	assert.Equal(t, "en", lang.Value(), "explicit keys win over merged keys")
	assert.Equal(t, "kit", layout.Value())

	copied, _ := tree.Get("copy")
	base, _ := tree.Get("base")
	assert.True(t, copied.Equal(base))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.ErrorCode
	}{
		{"invalid yaml", "title: [unclosed", errors.ErrConfigParse},
		{"root is a list", "- a\n- b\n", errors.ErrConfigInvalid},
		{"root is a scalar", "just text\n", errors.ErrConfigInvalid},
		{"empty document", "", errors.ErrConfigInvalid},
		{"complex key", "? [a, b]\n: value\n", errors.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/site/config.yml", []byte("title: Home\n"), 0644))
	fs := filesystem.NewAferoFS(mem)

	tree, err := Load(fs, "/site/config.yml")
	require.NoError(t, err)
	title, _ := tree.Get("title")
	assert.Equal(t, "Home", title.Value())

	_, err = Load(fs, "/site/missing.yml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	assert.Equal(t, "/site/missing.yml", errors.GetErrorDetails(err)["path"])
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		node *Tree
		want string
	}{
		{"string", Scalar("Home"), "Home"},
		{"int", Scalar(42), "42"},
		{"float", Scalar(1.5), "1.5"},
		{"whole float", Scalar(2.0), "2"},
		{"bool", Scalar(true), "true"},
		{"false", Scalar(false), "false"},
		{"null", Scalar(nil), "null"},
		{"date", Scalar(time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)), "2021-03-04"},
		{"datetime", Scalar(time.Date(2021, 3, 4, 9, 5, 7, 0, time.UTC)), "2021-03-04 09:05:07"},
		{"datetime with offset", Scalar(time.Date(2021, 3, 4, 9, 5, 7, 0, time.FixedZone("CET", 3600))), "2021-03-04 09:05:07+01:00"},
		{"sequence", Sequence(Scalar("a"), Scalar(1)), "[a, 1]"},
		{"mapping", NewMapping().Set("k", Scalar("v")), "{k: v}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.Text())
		})
	}
}

func TestInterface(t *testing.T) {
	tree := NewMapping().
		Set("title", Scalar("Home")).
		Set("nav", Sequence(Scalar("Home"), Scalar("About")))

	assert.Equal(t, map[string]interface{}{
		"title": "Home",
		"nav":   []interface{}{"Home", "About"},
	}, tree.Interface())
}

func TestWith_DoesNotMutateReceiver(t *testing.T) {
	orig := NewMapping().Set("title", Scalar("Home"))
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	injected := orig.With("date", Scalar(now))

	_, has := orig.Get("date")
	assert.False(t, has)
	assert.Equal(t, []string{"title", "date"}, injected.Keys())
}

func TestStrings(t *testing.T) {
	tree := NewMapping().
		Set("copy_files", Sequence(Scalar("img"), Scalar("robots.txt"))).
		Set("title", Scalar("Home"))

	values, ok := tree.Strings("copy_files")
	require.True(t, ok)
	assert.Equal(t, []string{"img", "robots.txt"}, values)

	_, ok = tree.Strings("title")
	assert.False(t, ok)
	_, ok = tree.Strings("missing")
	assert.False(t, ok)
}

func TestToYAML_KeepsKeyOrder(t *testing.T) {
	tree := NewMapping().
		Set("zeta", Scalar("last letter")).
		Set("alpha", Scalar(1))

	out, err := tree.ToYAML()
	require.NoError(t, err)
	assert.Equal(t, "zeta: last letter\nalpha: 1\n", string(out))
}
