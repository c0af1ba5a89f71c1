// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import "regexp"

// Field limits for visitor-submitted forms. Descriptions and cover letters
// get the long limit, everything else the short one.
const (
	maxFieldLen   = 255
	maxMessageLen = 10000
)

// emailRe is deliberately loose: something before one @, a dot somewhere
// in the domain. Deliverability is the only real test of an address.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validEmail reports whether s looks like a sendable email address.
func validEmail(s string) bool {
	return s != "" && len(s) <= maxFieldLen && emailRe.MatchString(s)
}

// fieldOK reports whether a required field is present and within max bytes.
func fieldOK(s string, max int) bool {
	return s != "" && len(s) <= max
}
