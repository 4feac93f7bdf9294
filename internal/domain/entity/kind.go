// Package entity defines the core business entities for the domain layer.
package entity

// Kind identifies an entity type in logs and error messages.
type Kind string

const (
	KindRole        Kind = "role"
	KindUser        Kind = "user"
	KindType        Kind = "type"
	KindCategory    Kind = "category"
	KindTransaction Kind = "transaction"
	KindGoal        Kind = "goal"
)
