package util

import (
	"errors"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const MaxPaperPages = 64

var ErrPdfTooManyPages = errors.New("pdf has too many pages")

func init() {
	// do not write a pdfcpu config dir on servers
	model.ConfigPath = "disable"
}

// ValidatePdf checks rs is a readable PDF and returns its page count.
func ValidatePdf(rs io.ReadSeeker) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.Validate(rs, conf); err != nil {
		return 0, err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	pages, err := api.PageCount(rs, conf)
	if err != nil {
		return 0, err
	}

	if pages > MaxPaperPages {
		return pages, ErrPdfTooManyPages
	}

	return pages, nil
}
