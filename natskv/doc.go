// Package natskv implements the coordination store contract on top of a
// NATS JetStream KeyValue bucket.
//
// Atomic KV operations map directly onto the election primitives:
//
//   - Create (atomic): create-if-absent, the election tie-breaker
//   - Get: existence checks and value reads
//   - Delete: resignation and stale-registration cleanup
//   - Watch: change notifications for the election key
//
// Instead of one-shot watches that need rearming after every read, the
// store keeps one persistent watcher goroutine per watched path and
// dispatches put/delete operations to subscribed listeners. The watcher is
// installed before the paired existence or data read, so no change between
// read and watch can go unseen.
//
// Ephemerality of the election key comes from the bucket TTL: configure the
// bucket with a TTL a little above the registrant's heartbeat/session
// refresh interval so a crashed leader's key expires on its own.
package natskv
