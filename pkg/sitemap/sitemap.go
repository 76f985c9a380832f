// Package sitemap writes a sitemap.xml (sitemaps.org protocol 0.9) listing
// published pages.
package sitemap

import (
	"net/url"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/pubtree/pkg/errors"
	"github.com/beevik/etree"
)

// Namespace is the sitemap XML namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// FileName is the name of the sitemap in the output root.
const FileName = "sitemap.xml"

// Entry is one page of the sitemap.
type Entry struct {
	Loc     string
	LastMod time.Time
}

// Entries turns published files below outputDir into entries under
// baseURL. Files outside outputDir are ignored; index.html files are
// listed by their directory URL. Entries are sorted by location.
func Entries(baseURL, outputDir string, files []string, lastMod time.Time) ([]Entry, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.Newf(errors.ErrInvalidInput, "sitemap base URL %q must be absolute", baseURL)
	}

	seen := make(map[string]bool)
	var entries []Entry
	for _, f := range files {
		rel, err := filepath.Rel(outputDir, f)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		p := filepath.ToSlash(rel)
		if p == "index.html" {
			p = ""
		} else if strings.HasSuffix(p, "/index.html") {
			p = strings.TrimSuffix(p, "index.html")
		}

		loc := *base
		loc.Path = path.Join("/", base.Path, p)
		if p == "" || strings.HasSuffix(p, "/") {
			loc.Path = strings.TrimSuffix(loc.Path, "/") + "/"
		}
		if seen[loc.String()] {
			continue
		}
		seen[loc.String()] = true
		entries = append(entries, Entry{Loc: loc.String(), LastMod: lastMod})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Loc < entries[j].Loc })
	return entries, nil
}

// Build renders entries as an indented sitemap document.
func Build(entries []Entry) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", Namespace)
	for _, e := range entries {
		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(e.Loc)
		if !e.LastMod.IsZero() {
			u.CreateElement("lastmod").SetText(e.LastMod.Format("2006-01-02"))
		}
	}

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode sitemap")
	}
	return data, nil
}

// Locations reads the page locations back from a sitemap document.
func Locations(data []byte) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "cannot read sitemap")
	}
	var locs []string
	for _, el := range doc.FindElements("/urlset/url/loc") {
		locs = append(locs, el.Text())
	}
	return locs, nil
}
