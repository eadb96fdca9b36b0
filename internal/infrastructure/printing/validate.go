package printing

import (
	"bytes"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// PageValidator parses composed output back with an independent PDF reader.
type PageValidator struct {
	conf *model.Configuration
}

// NewPageValidator creates a validator with relaxed validation
func NewPageValidator() *PageValidator {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PageValidator{conf: conf}
}

// PageCount returns the number of pages in data
func (v *PageValidator) PageCount(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, NewRenderError(ErrCodeRenderFailed, "PDF output is empty", nil)
	}
	count, err := api.PageCount(bytes.NewReader(data), v.conf)
	if err != nil {
		return 0, NewRenderError(ErrCodeRenderFailed, "PDF output is not readable", err)
	}
	return count, nil
}
