// Package nav maps bubble labels to the sibling pages they link to.
package nav

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var ErrUnknownLabel = errors.New("nav: unknown label")

// Navigator resolves a clicked label to a destination.
type Navigator interface {
	Navigate(label string) (string, error)
}

// Pages links every known label to "<base>/<label>.html".
type Pages struct {
	Base    string
	Labels  []string
	history []string
}

func NewPages(base string, labels []string) *Pages {
	if base == "" {
		base = "/"
	}
	return &Pages{Base: base, Labels: append([]string(nil), labels...)}
}

func (p *Pages) Navigate(label string) (string, error) {
	if !p.known(label) {
		return "", fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	dest := p.Href(label)
	p.history = append(p.history, dest)
	return dest, nil
}

// Href returns the page a label links to, known or not.
func (p *Pages) Href(label string) string {
	return path.Join(p.Base, label+".html")
}

// History lists every destination navigated to, oldest first.
func (p *Pages) History() []string {
	return append([]string(nil), p.history...)
}

func (p *Pages) known(label string) bool {
	for _, l := range p.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// PageName returns the page identifier for a URL path: the last segment
// without its .html suffix. "/site/contact.html" yields "contact".
func PageName(urlPath string) string {
	i := strings.LastIndex(urlPath, "/")
	name := urlPath[i+1:]
	return strings.TrimSuffix(name, ".html")
}
