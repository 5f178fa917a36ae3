// Package scraper retrieves the posts of a thread from its reference URL.
//
// The compact dat file is tried first. When it is unavailable or yields no
// posts, the rendered page is fetched after the host's courtesy delay and
// parsed instead.
package scraper
