// Package clickatell is a client for the Clickatell SMS gateway.
//
// The gateway exposes two API surfaces and the client speaks both. The
// legacy HTTP API authenticates every call with a username, password and
// account ID sent as query fields; the REST API authenticates with a bearer
// token and exchanges JSON. Six operations are available in either mode:
// sending a message, querying its delivery status and charge, stopping a
// queued message, checking route coverage for a number, and reading the
// account balance.
//
// Basic usage:
//
//	cfg := clickatell.DefaultConfig().
//		WithAPI(clickatell.APIREST).
//		WithRESTCredentials(apiKey, apiID)
//	client, err := clickatell.New(cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	resp, err := client.Send(ctx, "hello", []string{"27831234567"})
//	if err != nil {
//		return err
//	}
//	id, err := clickatell.ExtractMessageID(clickatell.APIREST, resp)
//
// Every operation performs exactly one blocking request and returns the raw
// gateway response; there are no retries, no backoff and no built-in rate
// limiting. Callers own partial-failure handling. A Client holds one
// response slot and is not meant for concurrent calls; create one client per
// goroutine or serialize access.
package clickatell
