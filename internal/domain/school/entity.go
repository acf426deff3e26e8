package school

import "time"

// School is the configuration entity devices, logs and tickets reference
// by slug id (e.g. "kossman"). AllowNewDevices gates whether a checkout
// of an unknown asset tag silently registers a new device.
type School struct {
	ID              string
	Name            string
	AllowNewDevices bool
	LogoURL         *string
	Address         *string
	Contact         *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
