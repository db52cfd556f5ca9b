// Package htmlmd converts fetched HTML pages into clean Markdown.
// Conversion is deterministic: identical input always yields identical
// output, with no clock or randomness involved.
package htmlmd

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// footerMarkers are page-template boilerplate phrases. Everything from
// the first occurrence onward is article footer, not content, and is cut.
var footerMarkers = []string{
	"微信扫一扫",
	"长按二维码",
	"预览时标签不可点",
	"Scan QR Code via WeChat",
}

// lazySrcAttrs are checked in order when an <img> carries no src, the
// usual lazy-loading pattern.
var lazySrcAttrs = []string{"data-src", "data-original"}

// Convert turns raw HTML into normalized Markdown. It never fails:
// unparseable input yields an empty string.
func Convert(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	preprocess(doc)

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	out := newConverter().Convert(root)
	out = truncateFooter(out)
	return normalize(out)
}

// ExtractText returns the document's visible text with all whitespace
// removed, for content-length heuristics on fetched pages.
func ExtractText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript, iframe").Remove()
	return strings.Join(strings.Fields(doc.Text()), "")
}

// preprocess strips non-content elements and resolves lazy images so the
// converter sees a usable src and alt on every image.
func preprocess(doc *goquery.Document) {
	doc.Find("script, style, noscript, iframe").Remove()

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		if src := strings.TrimSpace(img.AttrOr("src", "")); src == "" {
			for _, attr := range lazySrcAttrs {
				if v := strings.TrimSpace(img.AttrOr(attr, "")); v != "" {
					img.SetAttr("src", v)
					break
				}
			}
		}

		if alt := img.AttrOr("alt", ""); alt == "" {
			if title := img.AttrOr("title", ""); title != "" {
				img.SetAttr("alt", title)
			} else {
				img.SetAttr("alt", "image")
			}
		}
	})
}

func newConverter() *md.Converter {
	conv := md.NewConverter("", true, &md.Options{
		HeadingStyle:     "atx",
		HorizontalRule:   "---",
		BulletListMarker: "-",
		CodeBlockStyle:   "fenced",
		EmDelimiter:      "*",
		StrongDelimiter:  "**",
	})

	conv.Remove("script", "style", "button", "nav", "footer")

	conv.AddRules(
		md.Rule{
			Filter: []string{"img"},
			Replacement: func(_ string, selec *goquery.Selection, _ *md.Options) *string {
				src := firstAttr(selec, "src", "data-src", "data-original")
				if src == "" {
					return md.String("")
				}
				alt := selec.AttrOr("alt", "image")
				return md.String(fmt.Sprintf("![%s](%s)", alt, src))
			},
		},
		md.Rule{
			Filter: []string{"mark"},
			Replacement: func(content string, _ *goquery.Selection, _ *md.Options) *string {
				return md.String("==" + content + "==")
			},
		},
		md.Rule{
			Filter: []string{"del", "s", "strike"},
			Replacement: func(content string, _ *goquery.Selection, _ *md.Options) *string {
				return md.String("~~" + content + "~~")
			},
		},
	)

	return conv
}

func firstAttr(selec *goquery.Selection, attrs ...string) string {
	for _, name := range attrs {
		if v := strings.TrimSpace(selec.AttrOr(name, "")); v != "" {
			return v
		}
	}
	return ""
}

// truncateFooter cuts the output at the earliest footer marker.
func truncateFooter(s string) string {
	cut := len(s)
	for _, marker := range footerMarkers {
		if idx := strings.Index(s, marker); idx != -1 && idx < cut {
			cut = idx
		}
	}
	return s[:cut]
}
