// Package extract turns fetched thread content into plain-text posts.
//
// Dat content is a sequence of "<>"-delimited records, one per line, whose
// fourth field holds the post body as light HTML. Rendered pages are parsed
// into a DOM and handed to an ordered list of Strategy values; the first
// strategy that yields at least one post wins.
package extract
