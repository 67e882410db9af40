package report

import (
	"errors"

	"github.com/smartreport/smartreport/model"
)

// Renderer produces one artifact from the annotated run results.
type Renderer interface {
	Render(results []model.RunResult, stats model.RunStats) error
}

type multi struct {
	renderers []Renderer
}

// Multi fans the results out to every renderer. All renderers run even when
// an earlier one fails; their errors are joined.
func Multi(renderers ...Renderer) Renderer {
	return &multi{renderers: renderers}
}

func (m *multi) Render(results []model.RunResult, stats model.RunStats) error {
	var errs []error
	for _, r := range m.renderers {
		if err := r.Render(results, stats); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
