// Package fakes provides test doubles for secretgrep's store clients and
// the cloud SDK surfaces behind them.
//
// Fakes are manually implemented (not generated) to provide precise control
// over test behavior. FakeStoreClient stands in for a whole store; the SDK
// fakes plug into a real store implementation through its WithXxxClient
// option.
//
// Usage:
//
//	fake := fakes.NewFakeStoreClient()
//	fake.AddPayload("app-config", `{"db_host":"localhost"}`)
//	fetcher := kv.NewFetcher(fake, logger)
//	// Test fetch behavior...
package fakes
