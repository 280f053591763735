package presenter

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// ErrNoSlides is returned for a document that contains no slide text.
var ErrNoSlides = errors.New("no slides found in markdown content")

var frontMatterDelimiter = []byte(`+++`)

// parseFrontMatter splits a leading +++ delimited block off the input.
func parseFrontMatter(in []byte) (fm []byte, content []byte) {
	if !bytes.HasPrefix(in, frontMatterDelimiter) {
		return nil, in
	}

	parts := bytes.SplitN(in, frontMatterDelimiter, 3)
	if len(parts) < 3 {
		return nil, in
	}
	return parts[1], parts[2]
}

// ParseDocument parses a whole markdown deck. Front matter, if present,
// fills the presentation metadata; any field it leaves empty is taken from
// defaults.
func ParseDocument(input []byte, defaults Presentation) (*Presentation, error) {
	input = bytes.ReplaceAll(input, []byte("\r\n"), []byte("\n"))

	pres := &Presentation{}
	frontMatter, body := parseFrontMatter(input)
	if len(frontMatter) > 0 {
		if err := yaml.Unmarshal(frontMatter, pres); err != nil {
			return nil, fmt.Errorf("front matter: %w", err)
		}
	}
	pres.applyDefaults(defaults)

	texts := SplitSlides(string(body), pres.Separator)
	if len(texts) == 0 {
		return nil, ErrNoSlides
	}

	for i, text := range texts {
		s := ParseSlide(text)
		s.TitleSlide = i == 0 && strings.HasPrefix(text, "# ")
		pres.Slides = append(pres.Slides, s)
	}
	logger.WithField("slides", len(pres.Slides)).Debug("parsed presentation")
	return pres, nil
}

func (p *Presentation) applyDefaults(defaults Presentation) {
	if p.Name == "" {
		p.Name = defaults.Name
	}
	if p.Description == "" {
		p.Description = defaults.Description
	}
	if p.Separator == "" {
		p.Separator = defaults.Separator
	}
	if p.Separator == "" {
		p.Separator = DefaultSeparator
	}
	if p.Background == "" {
		p.Background = defaults.Background
	}
	if p.BaseDir == "" {
		p.BaseDir = defaults.BaseDir
	}
	p.Theme = p.Theme.Merge(defaults.Theme)
}

// ParseFile reads and parses a markdown deck. Relative image paths are
// later resolved against the file's directory.
func ParseFile(path string, defaults Presentation) (*Presentation, error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	pres, err := ParseDocument(buf, defaults)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	pres.BaseDir = filepath.Dir(abs)
	if pres.Name == "" {
		pres.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return pres, nil
}
