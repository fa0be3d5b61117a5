package document

// pptx.go - PowerPoint decks, one page per slide.
//
// Slides live at ppt/slides/slideN.xml and are read in numeric order. Text
// from the title placeholder is put first so the slide title reads as the
// page heading; other text frames and tables follow in document order.

import (
	"encoding/xml"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var slidePathRE = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

func readPPTX(data []byte) ([]Page, error) {
	pkg, err := openPackage(data)
	if err != nil {
		return nil, fmt.Errorf("open pptx: %w", err)
	}

	type slideRef struct {
		num  int
		name string
	}
	var slides []slideRef
	for _, f := range pkg.File {
		if m := slidePathRE.FindStringSubmatch(f.Name); m != nil {
			n, _ := strconv.Atoi(m[1])
			slides = append(slides, slideRef{n, f.Name})
		}
	}
	if len(slides) == 0 {
		return nil, errors.New("open pptx: no slides found")
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	pages := make([]Page, 0, len(slides))
	for _, ref := range slides {
		s := &slide{}
		if err := readPart(pkg, ref.name, s); err != nil {
			return nil, fmt.Errorf("read slide %d: %w", ref.num, err)
		}
		pages = append(pages, s.page(ref.num))
	}
	return pages, nil
}

// slide accumulates one slide's text while it is streamed.
type slide struct {
	title []string
	body  []string

	// current shape
	titleShape bool
	inFrame    bool

	// current text-frame paragraph
	inPara bool
	para   strings.Builder

	tables []Table
	tbl    tableBuilder
}

func (s *slide) start(el xml.StartElement, open openElems) {
	switch el.Name.Local {
	case "sp":
		s.titleShape = false
	case "ph":
		if open.has("nvPr") {
			if typ := attrVal(el, "type"); typ == "title" || typ == "ctrTitle" {
				s.titleShape = true
			}
		}
	case "txBody":
		if open.has("sp") {
			s.inFrame = true
		}
	case "tbl":
		s.tbl.begin()
	case "tr":
		s.tbl.beginRow()
	case "tc":
		s.tbl.beginCell()
	case "p":
		if s.tbl.inCell {
			s.tbl.paragraph()
		} else if s.inFrame {
			s.inPara = true
			s.para.Reset()
		}
	case "br":
		s.text("\n")
	}
}

func (s *slide) end(name string, _ openElems) {
	switch name {
	case "p":
		s.closePara()
	case "txBody":
		s.inFrame = false
		s.inPara = false
	case "sp":
		s.titleShape = false
	case "tc":
		s.tbl.endCell()
	case "tr":
		s.tbl.endRow()
	case "tbl":
		if t := s.tbl.finish(); len(t) > 0 {
			s.tables = append(s.tables, t)
			s.body = append(s.body, flattenTable(t))
		}
	}
}

func (s *slide) text(v string) {
	switch {
	case s.tbl.inCell:
		s.tbl.write(v)
	case s.inPara:
		s.para.WriteString(v)
	}
}

func (s *slide) closePara() {
	if !s.inPara {
		return
	}
	s.inPara = false
	line := strings.TrimSpace(s.para.String())
	if line == "" {
		return
	}
	if s.titleShape {
		s.title = append(s.title, line)
	} else {
		s.body = append(s.body, line)
	}
}

func (s *slide) page(num int) Page {
	lines := append(append([]string(nil), s.title...), s.body...)
	return Page{
		Number: num,
		Text:   validText(strings.Join(lines, "\n")),
		Tables: s.tables,
	}
}
