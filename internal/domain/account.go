package domain

import "time"

// AccountStatus indica el estado de la cuenta.
type AccountStatus int16

const (
	AccountEnabled  AccountStatus = 0
	AccountDisabled AccountStatus = 1
)

// AccountPlatform indica el origen de la cuenta.
type AccountPlatform int16

const (
	PlatformAdmin    AccountPlatform = 0
	PlatformMerchant AccountPlatform = 1
	PlatformUser     AccountPlatform = 2
)

// Account es la cuenta administrada por el backend.
type Account struct {
	ID        int64           `json:"id"`
	Username  string          `json:"username,omitempty"`
	Email     string          `json:"email,omitempty"`
	Mobile    string          `json:"mobile,omitempty"`
	Password  string          `json:"-"`
	Status    AccountStatus   `json:"status"`
	Platform  AccountPlatform `json:"platform"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
