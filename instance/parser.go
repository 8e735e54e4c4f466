// Package instance reads the .sm instance format: a plain-text file with
// three banner-delimited sections describing precedences, durations and
// resource demands, and resource capacities. It is an external
// collaborator — it produces model.Activity/model.Resource/precedence
// data for the search core but never reaches into scheme/distmatrix/bnb
// state itself.
package instance

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/chemoseq/rcpsp/model"
)

// ResourceNames lists the four fixed resource columns the format
// recognizes, in their domain meaning: nurse, chair, physician,
// pharmacist.
var ResourceNames = [4]string{"R1", "R2", "R3", "R4"}

type section int

const (
	sectionNone section = iota
	sectionPrecedence
	sectionRequests
	sectionResources
)

// Result bundles everything Parse extracts from one .sm file.
type Result struct {
	Activities  map[int]model.Activity
	Precedences [][2]int
	Resources   map[string]model.Resource
}

// Parse reads r and returns the activities, precedences, and resources it
// describes. Malformed lines are aggregated with multierr rather than
// aborting the read; a non-nil error may still carry a partially
// populated Result when only a few lines were defective.
func Parse(r io.Reader) (Result, error) {
	res := Result{
		Activities:  make(map[int]model.Activity),
		Precedences: nil,
		Resources:   make(map[string]model.Resource),
	}

	scanner := bufio.NewScanner(r)
	sec := sectionNone
	resourceRowSeen := false

	var errs error
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "-") {
			continue
		}

		upper := strings.ToUpper(line)
		switch {
		case strings.Contains(upper, "PRECEDENCE RELATIONS"):
			sec = sectionPrecedence
			continue
		case strings.Contains(upper, "REQUESTS/DURATIONS"):
			sec = sectionRequests
			continue
		case strings.Contains(upper, "RESOURCEAVAILABILITIES"):
			sec = sectionResources
			resourceRowSeen = false
			continue
		case strings.HasPrefix(upper, "JOBNR"):
			// Column-header row of the precedence or request section.
			continue
		}

		fields := strings.Fields(line)

		switch sec {
		case sectionPrecedence:
			errs = multierr.Append(errs, parsePrecedenceLine(fields, lineNo, &res))
		case sectionRequests:
			errs = multierr.Append(errs, parseRequestLine(fields, lineNo, &res))
		case sectionResources:
			if resourceRowSeen {
				continue
			}
			if !allInts(fields) {
				continue
			}
			errs = multierr.Append(errs, parseResourceLine(fields, lineNo, &res))
			resourceRowSeen = true
		}
	}
	if err := scanner.Err(); err != nil {
		errs = multierr.Append(errs, err)
	}

	if len(res.Activities) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: REQUESTS/DURATIONS", ErrMissingSection))
	}
	if len(res.Resources) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: RESOURCEAVAILABILITIES", ErrMissingSection))
	}

	return res, errs
}

// parsePrecedenceLine handles "jobnr mode num_successors s1 s2 ...".
func parsePrecedenceLine(fields []string, lineNo int, res *Result) error {
	if len(fields) < 3 {
		return malformed(lineNo, "precedence row needs at least 3 fields")
	}

	job, err := strconv.Atoi(fields[0])
	if err != nil {
		return malformed(lineNo, "job number %q is not an integer", fields[0])
	}

	numSucc, err := strconv.Atoi(fields[2])
	if err != nil {
		return malformed(lineNo, "successor count %q is not an integer", fields[2])
	}
	if len(fields) < 3+numSucc {
		return malformed(lineNo, "declared %d successors but only %d fields follow", numSucc, len(fields)-3)
	}

	var i int
	for i = 0; i < numSucc; i++ {
		succ, err := strconv.Atoi(fields[3+i])
		if err != nil {
			return malformed(lineNo, "successor %q is not an integer", fields[3+i])
		}
		res.Precedences = append(res.Precedences, [2]int{job, succ})
	}

	return nil
}

// parseRequestLine handles "jobnr mode duration R1 R2 R3 R4".
func parseRequestLine(fields []string, lineNo int, res *Result) error {
	if len(fields) < 3+len(ResourceNames) {
		return malformed(lineNo, "request row needs at least %d fields", 3+len(ResourceNames))
	}

	job, err := strconv.Atoi(fields[0])
	if err != nil {
		return malformed(lineNo, "job number %q is not an integer", fields[0])
	}

	duration, err := strconv.Atoi(fields[2])
	if err != nil {
		return malformed(lineNo, "duration %q is not an integer", fields[2])
	}

	demand := make(map[string]int, len(ResourceNames))
	var i int
	for i = range ResourceNames {
		qty, err := strconv.Atoi(fields[3+i])
		if err != nil {
			return malformed(lineNo, "demand %q is not an integer", fields[3+i])
		}
		demand[ResourceNames[i]] = qty
	}

	res.Activities[job] = model.Activity{ID: job, Duration: duration, Demand: demand}
	return nil
}

// parseResourceLine handles the single RESOURCEAVAILABILITIES data row.
func parseResourceLine(fields []string, lineNo int, res *Result) error {
	if len(fields) < len(ResourceNames) {
		return malformed(lineNo, "resource row needs %d fields", len(ResourceNames))
	}

	var i int
	for i = range ResourceNames {
		capacity, err := strconv.Atoi(fields[i])
		if err != nil {
			return malformed(lineNo, "capacity %q is not an integer", fields[i])
		}
		res.Resources[ResourceNames[i]] = model.Resource{Name: ResourceNames[i], Capacity: capacity}
	}

	return nil
}

// allInts reports whether every field parses as an integer, the same
// digit-only guard original_source/parse_sm.py uses to skip the
// RESOURCEAVAILABILITIES header row (R 1  R 2  R 3  R 4) before
// consuming the real data row.
func allInts(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	var f string
	for _, f = range fields {
		if _, err := strconv.Atoi(f); err != nil {
			return false
		}
	}
	return true
}

func malformed(lineNo int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedLine, lineNo, fmt.Sprintf(format, args...))
}
