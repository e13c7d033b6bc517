// Package models defines the core domain models for housemate.
//
// # Records
//
//   - Puzzle: a calendar item scheduled on one day of the shared calendar
//   - Account: a shared expense, split evenly among its participants
//   - Rulebook: an entry on the house "rules" board
//   - ChatMessage, Notification: group chat and per-member notices
//
// Everything except Member and Group belongs to exactly one Group.
//
// # Ownership
//
// Puzzle and Account implement ownership.Record so the classifier can probe
// their creator fields by their JSON names (memberLoginId, memberId, createdBy).
// The JSON field names are the wire contract the mobile app relies on.
//
// # Identifiers
//
// Every record id is a positive integer assigned by the store. Timestamps are
// RFC 3339 strings in UTC, which order correctly as plain strings.
package models
