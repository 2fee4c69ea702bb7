// Package apiclient is a small JSON HTTP client for the social backend.
//
// A Client holds a base URL and a set of default headers that are applied
// to every request. Headers can be changed at any time from any goroutine;
// the session manager uses this to set and remove the Authorization header.
//
//	c, err := apiclient.New("http://localhost:3000",
//	    apiclient.WithTimeout(10*time.Second),
//	    apiclient.WithRetries(2),
//	)
//	c.SetHeader("Authorization", "Bearer "+token)
//	resp, err := c.Post(ctx, "/auth/login", map[string]string{"email": e, "password": p})
//	if err != nil {
//	    // no response was received
//	}
//	if resp.OK() { ... }
//
// A non-nil error from Post or Get always means no HTTP response was
// obtained. Any response, whatever its status, is returned as a *Response
// and left to the caller to interpret.
//
// Each request carries an X-Request-ID taken from the context (see
// pkg/requestid) or freshly generated.
package apiclient
