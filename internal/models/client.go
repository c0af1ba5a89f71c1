// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a customer of the construction company, shown as a logo strip
// on the public site. The logo binary lives in the public S3 bucket.
type Client struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Website       string    `json:"website"`
	LogoS3Key     *string   `json:"logo_s3_key,omitempty"`
	ShowOnWebsite bool      `json:"show_on_website"`
	DisplayOrder  int       `json:"display_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasLogo reports whether a logo has been uploaded for this client.
func (c *Client) HasLogo() bool {
	return c.LogoS3Key != nil && *c.LogoS3Key != ""
}
