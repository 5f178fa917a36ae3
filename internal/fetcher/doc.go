// Package fetcher retrieves raw thread content from forum servers.
//
// A thread is fetched in up to two attempts:
//
//  1. Primary: the compact dat file ({base}/{board}/dat/{id}.dat), sent with
//     a Monazilla client identity and decoded from Shift_JIS.
//  2. Fallback: the rendered read.cgi page, sent with browser-like headers
//     and decoded from its declared charset.
//
// A primary attempt that does not answer 200 yields no content instead of an
// error, so the caller can move on to the fallback. The fallback waits on a
// per-host Gate first, which keeps requests to one origin at least the
// configured courtesy delay apart even when threads are fetched concurrently.
//
// # Usage
//
//	f := fetcher.New(nil, fetcher.WithFallbackDelay(time.Second))
//	raw, err := f.FetchPrimary(ctx, loc)
//	if raw == nil && err == nil {
//	    raw, err = f.FetchFallback(ctx, loc)
//	}
package fetcher
