// Package sanitize strips markup from fields that are shown as plain text.
package sanitize

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// maxPasses bounds how many entity layers are peeled off one value.
const maxPasses = 8

// PlainText removes every tag from a value. Entity-encoded markup is decoded
// and stripped as well, so the stored text never turns back into a tag when
// a consumer unescapes it.
type PlainText struct {
	policy *bluemonday.Policy
}

// NewPlainText creates a sanitizer backed by bluemonday's strict policy
func NewPlainText() *PlainText {
	return &PlainText{policy: bluemonday.StrictPolicy()}
}

// Strip returns v without markup. The result is a fixed point: stripping it
// again returns it unchanged.
func (p *PlainText) Strip(v string) string {
	for range maxPasses {
		next := p.pass(v)
		if next == v {
			return v
		}
		v = next
	}
	// Still changing after maxPasses: keep the escaped form.
	return p.policy.Sanitize(html.UnescapeString(v))
}

// StripPtr strips an optional value; nil stays nil.
func (p *PlainText) StripPtr(v *string) *string {
	if v == nil {
		return nil
	}
	out := p.Strip(*v)
	return &out
}

// StripAll strips every entry of vs.
func (p *PlainText) StripAll(vs []string) []string {
	if vs == nil {
		return nil
	}
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = p.Strip(v)
	}
	return out
}

func (p *PlainText) pass(v string) string {
	return html.UnescapeString(p.policy.Sanitize(html.UnescapeString(v)))
}
