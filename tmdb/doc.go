// Package tmdb provides a client for The Movie Database v3 API.
//
// The client covers the three read paths a browsing front end needs:
// categorized lists, title search, and single-record detail lookups.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient(
//		os.Getenv("TMDB_API_KEY"),
//		logger,
//		tmdb.WithTimeout(15*time.Second),
//		tmdb.WithRateLimit(20),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.FetchList(ctx, tmdb.KindMovie, "popular", 1)
//
// # Error Handling
//
// Every call makes exactly one attempt and reports failure through its
// error return:
//
//   - ErrNetwork: the request could not complete (wrapped in *RequestError)
//   - *APIError: the service answered with a non-success status
//   - ErrMalformedPayload: the body could not be decoded
//
// Classify maps any of these to FailureNetwork or FailureService.
package tmdb
