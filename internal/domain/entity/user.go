package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password always holds a bcrypt hash once persisted; plaintext only exists
// transiently inside the application service before hashing.
type User struct {
	ID          string    `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Password    string    `bson:"password" json:"-"`
	AvatarURL   string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	WalletMoney float64   `bson:"wallet_money" json:"wallet_money"`
	Address     string    `bson:"address" json:"address"`
	IsVerified  bool      `bson:"is_verified" json:"is_verified"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// HasSetNonDefaultAddress reports whether the user replaced the configured
// placeholder address with a real one. Pure comparison, no side effects.
func (u *User) HasSetNonDefaultAddress(defaultAddress string) bool {
	return u.Address != defaultAddress
}
