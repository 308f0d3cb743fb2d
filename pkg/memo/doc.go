/*
Package memo memoises generation results behind a SegmentCache.

Concurrent requests for the same key are serialised with reference-counted
local locks (and an optional distributed lock), so each key is generated
once and every later caller is served from the cache.
*/
package memo
