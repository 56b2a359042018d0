package model

// History actions
const (
	HistoryCreated  = "CREATED"
	HistoryModified = "MODIFIED"
	HistoryDeleted  = "DELETED"
)

// Verification types
const (
	VerificationVerifyEmail = "VERIFY_EMAIL"
)

// VerificationLifetimeSeconds bounds how long an emailed token stays valid.
// Invitations are only valid for 24 hours.
const VerificationLifetimeSeconds = 86400

// User roles: lower value means more privilege.
const (
	RoleOwner = 0
	RoleAdmin = 50
	RoleUser  = 100
)

// Lifecycle statuses. Every audited entity keeps DELETED as the terminal
// value its collection filters on.
const (
	UserActive   = 0
	UserInactive = 50
	UserDeleted  = 100

	CompanyActive   = 0
	CompanyInactive = 50
	CompanyDeleted  = 100

	AbilityActive  = 0
	AbilityDeleted = 100

	ProjectActive  = 0
	ProjectDeleted = 100

	ActivityActive  = 0
	ActivityDeleted = 100
)
