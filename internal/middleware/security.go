// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders sets baseline security headers on every response, public
// pages and admin alike.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// No MIME-sniffing of the Content-Type.
		h.Set("X-Content-Type-Options", "nosniff")

		// Only same-origin framing, so third parties can't wrap the admin.
		h.Set("X-Frame-Options", "SAMEORIGIN")

		// The legacy XSS filter does more harm than good.
		h.Set("X-XSS-Protection", "0")

		// Full referrer within the site only, origin across sites.
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Opt out of FLoC cohort calculations.
		h.Set("Permissions-Policy", "interest-cohort=()")

		next.ServeHTTP(w, r)
	})
}
