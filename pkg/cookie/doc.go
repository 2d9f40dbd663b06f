// Package cookie writes the wizard session cookie.
//
// With a secret of at least 32 bytes the value is signed with HMAC-SHA256,
// so a tampered session token is rejected before any store lookup:
//
//	m := cookie.New(cookie.WithSecret(secret), cookie.WithSecure(true))
//	m.Write(w, "__wizard", token, 0)
//	token, err := m.Read(r, "__wizard")
package cookie
