package merge

import (
	"github.com/beevik/etree"
	"github.com/omarchy-fork/omacustom/pkg/errors"
)

// FontAlias asks fontconfig to prefer fonts for a generic family
type FontAlias struct {
	Family string   `koanf:"family" toml:"family" yaml:"family"`
	Prefer []string `koanf:"prefer" toml:"prefer" yaml:"prefer"`
}

// DefaultFontAliases map the generic families to Liberation, which covers
// Hebrew once the CJK and extra Noto packages are gone.
func DefaultFontAliases() []FontAlias {
	return []FontAlias{
		{Family: "sans-serif", Prefer: []string{"Liberation Sans"}},
		{Family: "serif", Prefer: []string{"Liberation Serif"}},
		{Family: "monospace", Prefer: []string{"Liberation Mono"}},
	}
}

const fontconfigDoctype = `DOCTYPE fontconfig SYSTEM "urn:fontconfig:fonts.dtd"`

// MergeFontAliases adds every alias that fontconfig does not yet have to
// the fonts.conf text raw. An empty raw starts a new document.
func MergeFontAliases(raw []byte, aliases []FontAlias) ([]byte, Result, error) {
	doc := etree.NewDocument()
	if len(raw) > 0 {
		if err := doc.ReadFromBytes(raw); err != nil {
			return nil, Merged, errors.Wrap(err, errors.ErrParse, "cannot parse fontconfig XML")
		}
	}

	root := doc.Root()
	switch {
	case root == nil:
		doc.CreateProcInst("xml", `version="1.0"`)
		doc.CreateDirective(fontconfigDoctype)
		root = doc.CreateElement("fontconfig")
	case root.Tag != "fontconfig":
		return nil, Merged, errors.Newf(errors.ErrParse, "unexpected root element <%s>", root.Tag)
	}

	added := 0
	for _, alias := range aliases {
		if len(alias.Prefer) == 0 || hasAlias(root, alias) {
			continue
		}
		el := root.CreateElement("alias")
		el.CreateElement("family").SetText(alias.Family)
		prefer := el.CreateElement("prefer")
		for _, font := range alias.Prefer {
			prefer.CreateElement("family").SetText(font)
		}
		added++
	}
	if added == 0 {
		return nil, AlreadyConfigured, nil
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, Merged, errors.Wrap(err, errors.ErrInternal, "cannot serialize fontconfig XML")
	}
	return out, Merged, nil
}

// hasAlias reports whether an alias for the family already prefers the
// first requested font.
func hasAlias(root *etree.Element, alias FontAlias) bool {
	for _, el := range root.SelectElements("alias") {
		family := el.SelectElement("family")
		if family == nil || family.Text() != alias.Family {
			continue
		}
		for _, preferred := range el.FindElements("./prefer/family") {
			if preferred.Text() == alias.Prefer[0] {
				return true
			}
		}
	}
	return false
}
