// Package async runs functions in goroutines and hands back a typed Future.
//
//	f := async.Async(ctx, creds, svc.Login)
//	res, err := f.Await()
//
// Resolved wraps a value that is already known, which lets APIs that return
// futures reject a call without spawning a goroutine.
package async
