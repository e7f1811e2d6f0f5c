// Package recorder captures live resource values and stores them as raw segments that the
// resource fetchers, and therefore profiles, can read back.
package recorder
