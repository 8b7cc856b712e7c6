// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Range designates consecutive input or output bits of a named part.
//
// Count == 0 means that the range was not specified: it starts at bit 0 and
// spans as many bits as the other end of the link, or the full width.
//
type Range struct {
	Part  string
	From  int
	Count int
}

func (r Range) String() string {
	if r.Count == 0 {
		return r.Part
	}
	if r.Count == 1 {
		return r.Part + "[" + strconv.Itoa(r.From) + "]"
	}
	return r.Part + "[" + strconv.Itoa(r.From) + ".." + strconv.Itoa(r.From+r.Count-1) + "]"
}

// A Link is a parsed connection between the input bits of one part and the
// output bits of another.
//
type Link struct {
	In  Range
	Out Range
}

// ParseConnections parses a comma separated list of connections of the form
//
//	target.in[RANGE] = source.out[RANGE]
//
// where RANGE is a single bit number, an inclusive range like 0..3, or is
// omitted together with its brackets. For example:
//
//	ParseConnections("reg.in[0..3] = add.out[4..7], reg.in[4] = add.out[0]")
//
// If both ends specify a range, their bit counts must match.
//
func ParseConnections(s string) ([]Link, error) {
	var ls []Link
	for _, c := range strings.Split(s, ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		i := strings.IndexByte(c, '=')
		if i < 0 {
			return nil, parseError(c, "missing '='")
		}
		in, err := parseRange(c[:i], "in")
		if err != nil {
			return nil, err
		}
		out, err := parseRange(c[i+1:], "out")
		if err != nil {
			return nil, err
		}
		if in.Count != 0 && out.Count != 0 && in.Count != out.Count {
			return nil, parseError(c, "bit count mismatch")
		}
		ls = append(ls, Link{In: in, Out: out})
	}
	if len(ls) == 0 {
		return nil, parseError(s, "no connections")
	}
	return ls, nil
}

// parseInputs parses a comma separated list of input ranges like
// "reg.in[0..3], add.in".
//
func parseInputs(s string) ([]Range, error) {
	var rs []Range
	for _, c := range strings.Split(s, ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		r, err := parseRange(c, "in")
		if err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	if len(rs) == 0 {
		return nil, parseError(s, "no inputs")
	}
	return rs, nil
}

// parseRange parses "part.dir[RANGE]".
//
func parseRange(s string, dir string) (Range, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return Range{}, parseError(s, "expected part."+dir)
	}
	r := Range{Part: s[:i]}
	if !isIdent(r.Part) {
		return Range{}, parseError(s, "invalid part name")
	}
	s = s[i+1:]
	if !strings.HasPrefix(s, dir) {
		return Range{}, parseError(s, "expected "+dir)
	}
	s = strings.TrimSpace(s[len(dir):])
	if s == "" {
		return r, nil
	}
	if s[0] != '[' || s[len(s)-1] != ']' {
		return Range{}, parseError(s, "expected bit range in brackets")
	}
	s = s[1 : len(s)-1]
	var (
		from, to int
		err      error
	)
	if i = strings.Index(s, ".."); i < 0 {
		from, err = atoi(s)
		to = from
	} else {
		from, err = atoi(s[:i])
		if err == nil {
			to, err = atoi(s[i+2:])
		}
	}
	if err != nil {
		return Range{}, err
	}
	if to < from {
		return Range{}, parseError(s, "empty bit range")
	}
	if to-from == math.MaxInt {
		return Range{}, parseError(s, "bit range too large")
	}
	r.From, r.Count = from, to-from+1
	return r, nil
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, parseError(s, "invalid bit number")
	}
	return n, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}

func parseError(in string, msg string) error {
	return errors.Wrapf(ErrInvalidArgument, "in %q: %s", in, msg)
}
