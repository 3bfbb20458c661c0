package render

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/unidoc/unioffice/v2/common/license"
	"github.com/unidoc/unioffice/v2/document"

	"github.com/nurpe/contractgen/internal/model"
)

var ErrTemplateMissing = errors.New("contract template not found")

type DocxRenderer struct {
	templatePath string
}

func NewDocxRenderer(templatePath, licenseKey string) (*DocxRenderer, error) {
	if licenseKey != "" {
		if err := license.SetMeteredKey(licenseKey); err != nil {
			return nil, fmt.Errorf("activate unioffice license: %w", err)
		}
	}
	return &DocxRenderer{templatePath: templatePath}, nil
}

func (r *DocxRenderer) Render(ctx model.ContractContext) ([]byte, error) {
	if _, err := os.Stat(r.templatePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrTemplateMissing, r.templatePath)
		}
		return nil, fmt.Errorf("stat template: %w", err)
	}

	doc, err := document.Open(r.templatePath)
	if err != nil {
		return nil, fmt.Errorf("open template %q: %w", r.templatePath, err)
	}
	defer doc.Close()

	values := ctx.Values()
	// Paragraphs() включает абзацы внутри таблиц.
	fillParagraphs(doc.Paragraphs(), values)
	for _, h := range doc.Headers() {
		fillParagraphs(h.Paragraphs(), values)
	}
	for _, f := range doc.Footers() {
		fillParagraphs(f.Paragraphs(), values)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("save docx: %w", err)
	}
	return buf.Bytes(), nil
}

// Word режет плейсхолдеры по ранам, поэтому работаем с текстом абзаца целиком
func fillParagraphs(paragraphs []document.Paragraph, values map[string]any) {
	for _, p := range paragraphs {
		runs := p.Runs()
		if len(runs) == 0 {
			continue
		}

		var full strings.Builder
		for _, run := range runs {
			full.WriteString(run.Text())
		}
		text := full.String()
		if !hasMarkup(text) {
			continue
		}

		filled := Fill(text, values)
		for i, run := range runs {
			run.ClearContent()
			if i == 0 {
				run.AddText(filled)
			}
		}
	}
}
