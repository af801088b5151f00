package content

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Failure is a file that could not be turned into an item.
type Failure struct {
	Path string
	Err  error
}

// MarshalJSON renders the error as its message.
func (f Failure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Path  string `json:"path"`
		Error string `json:"error"`
	}{f.Path, f.Err.Error()})
}

// Warning is an item that was included despite validation problems.
type Warning struct {
	Path     string       `json:"path"`
	Problems []FieldError `json:"problems"`
}

// Report collects per-file outcomes of a load. A nil *Report is treated as empty.
type Report struct {
	Failures []Failure `json:"failures"`
	Warnings []Warning `json:"warnings"`
}

func (r *Report) fail(path string, err error) {
	r.Failures = append(r.Failures, Failure{Path: path, Err: err})
}

func (r *Report) warn(path string, problems []FieldError) {
	r.Warnings = append(r.Warnings, Warning{Path: path, Problems: problems})
}

// OK reports whether the load had no failures.
func (r *Report) OK() bool {
	return r == nil || len(r.Failures) == 0
}

// Clean reports whether the load had neither failures nor warnings.
func (r *Report) Clean() bool {
	return r == nil || (len(r.Failures) == 0 && len(r.Warnings) == 0)
}

// Merge appends o's entries to r.
func (r *Report) Merge(o *Report) {
	if o == nil {
		return
	}
	r.Failures = append(r.Failures, o.Failures...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// log writes one line per warning and a single aggregate line for failures.
func (r *Report) log(logger *zap.Logger, collection string) {
	for _, w := range r.Warnings {
		problems := make([]string, len(w.Problems))
		for i, p := range w.Problems {
			problems[i] = p.Error()
		}
		logger.Warn("front matter validation",
			zap.String("collection", collection),
			zap.String("path", w.Path),
			zap.Strings("problems", problems))
	}
	if len(r.Failures) == 0 {
		return
	}
	paths := make([]string, len(r.Failures))
	errs := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		paths[i] = f.Path
		errs[i] = f.Err.Error()
	}
	logger.Warn("content files skipped",
		zap.String("collection", collection),
		zap.Int("failures", len(r.Failures)),
		zap.Strings("paths", paths),
		zap.Strings("errors", errs))
}
