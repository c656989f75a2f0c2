// Package publisher delivers relayed ledger events outside the service.
//
// RedisStreamPublisher appends every event to a Redis stream with XADD, one
// entry per event, so consumers can read them with XREAD or a consumer group.
// LogPublisher writes events to a zap logger and is used when Redis is not
// configured.
//
// Both are driven by the outbox relay and see each event at least once.
package publisher
