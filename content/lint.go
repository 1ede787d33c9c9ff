package content

import (
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Report is the outcome of linting a content set.
type Report struct {
	Checked  int
	Problems []Problem
}

// OK reports whether the lint pass found no problems.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// LintPost validates a single post's front-matter record. The returned map
// is keyed by front-matter key; nil means the post is clean.
func LintPost(p Post) validation.Errors {
	errs := validation.Errors{}
	if err := validation.Validate(p.Title, validation.Required); err != nil {
		errs["title"] = err
	}
	if err := validation.Validate(p.Date, validation.Required, validation.Date(DateLayout)); err != nil {
		errs["date"] = err
	}
	if err := validation.Validate(p.Tags, validation.Required); err != nil {
		errs["tags"] = err
	}
	if err := validation.Validate(p.Category, validation.Required); err != nil {
		errs["category"] = err
	}
	if err := validation.Validate(p.Excerpt, validation.Required); err != nil {
		errs["excerpt"] = err
	}
	if err := validation.Validate(p.ReadTime, validation.Required, validation.Min(1)); err != nil {
		errs["read_time"] = err
	}
	if err := validation.Validate(p.Slug, validation.Required); err != nil {
		errs["slug"] = err
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Lint validates every post and folds in problems found during loading
// (malformed front matter, duplicate slugs).
func Lint(posts []Post, loadProblems []Problem) Report {
	report := Report{
		Checked:  len(posts) + len(loadProblems),
		Problems: append([]Problem(nil), loadProblems...),
	}
	for _, p := range posts {
		errs := LintPost(p)
		if errs == nil {
			continue
		}
		keys := make([]string, 0, len(errs))
		for k := range errs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			report.Problems = append(report.Problems, Problem{
				File:    p.Source,
				Field:   k,
				Message: errs[k].Error(),
			})
		}
	}
	return report
}

// LintDir loads and lints a content directory in one step.
func LintDir(root string) (Report, error) {
	posts, problems, err := LoadDir(root)
	if err != nil {
		return Report{}, err
	}
	return Lint(posts, problems), nil
}
