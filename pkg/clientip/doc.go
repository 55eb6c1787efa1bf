// Package clientip extracts the client address of an HTTP request behind
// proxies, load balancers or CDNs.
//
// Headers are checked in this order and the first valid address wins:
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For, leftmost entry
//  4. X-Real-IP
//  5. RemoteAddr
//
// Addresses are parsed and normalized with net.ParseIP; 0.0.0.0 and malformed
// values are skipped. When nothing valid is found GetIP returns RemoteAddr
// unchanged, so it never returns an empty key for a served request.
//
// Proxy headers are client controlled unless a trusted proxy overwrites them.
// Only use GetIP as a rate limit key when the process sits behind one.
//
//	key := clientip.GetIP(r)
package clientip
