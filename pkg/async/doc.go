// Package async runs a blocking call in its own goroutine and hands back a
// Future for its result.
//
// The session manager uses it to offer asynchronous forms of login, signup,
// and restore: the operation suspends at its network call inside the
// goroutine while the caller keeps working and collects the outcome later.
//
//	f := async.Go(ctx, func(ctx context.Context) (User, error) {
//	    return client.Login(ctx, email, password)
//	})
//	select {
//	case <-f.Done():
//	    user, err := f.Result()
//	case <-time.After(time.Second):
//	    // still pending; the call keeps running
//	}
//
// Await(ctx) stops waiting when ctx ends but never cancels the underlying
// call; cancellation, if wanted, is the job of the context handed to Go.
package async
