// Package cookie manages HTTP cookies with shared defaults.
//
// A Manager is created with one or more secrets (32+ chars each) and default
// Options. Its Jar offers plain, signed (HMAC-SHA256) and encrypted
// (AES-256-GCM) cookies plus one-time flash values. The first secret writes;
// all secrets read, which allows rotation.
//
// Handlers that read and write in the same request should use a Jar:
//
//	jar := manager.Jar(w, r)
//	_ = jar.Set("auth-token", token, cookie.WithExpires(time.Now().AddDate(0, 0, 1)))
//	v, _ := jar.Get("auth-token") // sees the value written above
//
// Configuration can be loaded from COOKIE_* environment variables via Config
// and NewFromConfig.
package cookie
