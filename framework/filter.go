package framework

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific catalogue entry or not,
// given its label.
type Filter func(label string) bool

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(label string) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(label)) &&
		!r.MustNotMatch.AnyMatch(label)
}

func (r RegexFilters) IsDefined() bool {
	return r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined()
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// NameList is a flag value that accumulates names. Each occurrence of the flag may carry a single
// name or several separated by commas or spaces, so both "-n a -n b" and "-n a,b" work.
type NameList []string

func (n NameList) String() string {
	return strings.Join(n, ",")
}

// Set is called by the command line parser
func (n *NameList) Set(value string) error {
	for _, name := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ' ' }) {
		*n = append(*n, name)
	}
	return nil
}

// PrintFilterDescription writes a short description of any active regex filters.
func PrintFilterDescription(out Logger, filters RegexFilters) {
	if !filters.IsDefined() {
		return
	}
	out.Printf("Some entries will be skipped based on the filter criteria for this run:")
	if filters.MustMatch.IsDefined() {
		out.Printf("  skip any not matching %s", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		out.Printf("  skip any matching %s", filters.MustNotMatch)
	}
}
