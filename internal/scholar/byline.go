// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"strconv"
	"strings"
)

// bylineSeparator is what Scholar puts between the author, venue, and
// host segments of a result byline.
const bylineSeparator = " - "

// byline is the parsed form of a "gs_a" line, e.g.
// "F Berto, C Ardagna - IEEE Trans. Services Computing, 2022 - ieeexplore.ieee.org".
type byline struct {
	Authors []string
	Venue   string
	Year    int
}

// splitByline parses a result byline with field-splitting heuristics:
// the first separator ends the author list, and a trailing 4-digit
// token of the next segment is the year. Missing pieces degrade to
// zero values; splitByline never fails.
func splitByline(line string) byline {
	var b byline
	line = strings.TrimSpace(line)
	if line == "" {
		return b
	}

	segments := strings.Split(line, bylineSeparator)
	b.Authors = splitAuthors(segments[0])
	if len(segments) > 1 {
		b.Venue, b.Year = splitVenueYear(segments[1])
	}
	return b
}

// splitAuthors splits the comma-separated author segment. Scholar
// truncates long lists with an ellipsis entry, which is dropped.
func splitAuthors(segment string) []string {
	var authors []string
	for _, name := range strings.Split(segment, ",") {
		name = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), "…"))
		if name == "" || name == "..." {
			continue
		}
		authors = append(authors, name)
	}
	return authors
}

// splitVenueYear separates "Venue, Year" into its parts. The segment may
// be a bare year, a bare venue, or both; recombining the parts with
// ", " reproduces the original segment modulo whitespace.
func splitVenueYear(segment string) (venue string, year int) {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "", 0
	}

	if idx := strings.LastIndex(segment, ","); idx >= 0 {
		if y, ok := parseYear(segment[idx+1:]); ok {
			return strings.TrimSpace(segment[:idx]), y
		}
		return segment, 0
	}

	if y, ok := parseYear(segment); ok {
		return "", y
	}
	return segment, 0
}

// parseYear accepts a plausible publication year.
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return 0, false
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 1500 || y > 2100 {
		return 0, false
	}
	return y, true
}
