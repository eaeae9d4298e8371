// Package auth implements the authentication core of the phresh backend:
// credential verification, password policy enforcement, and stateless JWT
// session handling.
//
// Backends:
//   - A Backend pairs a Transport (how a token moves between client and
//     server: bearer header or named cookie) with a Strategy (how identity is
//     encoded into a signed token). Backends live in an immutable Registry
//     built once at startup; the default wiring issues a short-lived
//     "access-token" cookie and a long-lived "refresh-token" cookie.
//
// Strategies:
//   - JWTStrategy signs claims with a shared HMAC secret and enforces
//     audience and expiry on read. OriginStrategy additionally binds tokens
//     to the issuing client's address and port so a token exfiltrated to a
//     different network location is rejected rather than replayed.
//
// The Manager orchestrates registration, credential authentication, and
// identity resolution against a UserStore, and fires best-effort lifecycle
// hooks (post-register, password reset, verification requests).
package auth
