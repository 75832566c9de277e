// Package services defines shared error markers used by curator components
// and external integrations.
//
// The sentinel errors plus the Wrap helper keep failure classification
// consistent: callers can errors.Is against a marker without parsing
// message text.
package services
