package models

// RoleType defines the caller's role against the registrar contract
type RoleType string

const (
	// RoleOwner is the contract owner (the registrar administration)
	RoleOwner RoleType = "OWNER"
	// RoleStudent is any other connected identity
	RoleStudent RoleType = "STUDENT"
)
