// Package google handles OAuth2 authentication against the Google APIs.
//
// Tokens are cached under the user cache directory
// (~/.cache/mailbrief/ on Linux). The auth command drives the
// out-of-band code flow: print the authorization URL, read the code,
// exchange and cache it. All other commands only read the cache.
package google
